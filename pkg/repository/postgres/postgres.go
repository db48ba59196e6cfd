package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
)

// Repository implements ScanLedger and SubscriptionRegistry on PostgreSQL.
type Repository struct {
	db *sql.DB
}

var (
	_ interfaces.ScanLedger           = (*Repository)(nil)
	_ interfaces.SubscriptionRegistry = (*Repository)(nil)
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS github_scans (
		compare     TEXT PRIMARY KEY,
		id          TEXT NOT NULL UNIQUE,
		channel     TEXT NOT NULL,
		ref         TEXT NOT NULL,
		repository  TEXT NOT NULL,
		commit_id   TEXT NOT NULL,
		payload     JSONB,
		tree_id     TEXT NOT NULL DEFAULT '',
		test_id     TEXT NOT NULL DEFAULT '',
		results     JSONB,
		matrix      JSONB,
		verdict     TEXT NOT NULL DEFAULT '',
		error       TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS github_scans_ref_repository
		ON github_scans (ref, repository, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		channel        TEXT NOT NULL,
		email          TEXT NOT NULL,
		ref            TEXT NOT NULL,
		repository     TEXT NOT NULL,
		environment    TEXT NOT NULL,
		session_id     TEXT NOT NULL,
		latest_scan_id TEXT NOT NULL DEFAULT '',
		seq            BIGSERIAL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (channel, email, ref, repository, environment)
	)`,
	`CREATE INDEX IF NOT EXISTS subscriptions_partition
		ON subscriptions (channel, ref, repository, environment)`,
}

// New opens the database and creates tables when they are missing.
func New(ctx context.Context, dsn string) (*Repository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open PostgreSQL")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect PostgreSQL")
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "failed to initialize schema",
				goerr.V("stmt", stmt),
			)
		}
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close PostgreSQL")
	}
	return nil
}
