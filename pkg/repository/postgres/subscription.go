package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

const subscriptionColumns = `channel, email, ref, repository, environment,
	session_id, latest_scan_id, created_at, updated_at`

func (r *Repository) Upsert(ctx context.Context, key model.SubscriptionKey, data model.SubscriptionData) (*model.Subscription, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	sub := model.NewSubscription(key, data, time.Now().UTC())

	row := r.db.QueryRowContext(ctx, `INSERT INTO subscriptions
		(channel, email, ref, repository, environment, session_id, latest_scan_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (channel, email, ref, repository, environment) DO UPDATE SET
			session_id = EXCLUDED.session_id,
			latest_scan_id = EXCLUDED.latest_scan_id,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at`,
		string(sub.Channel), string(sub.Email), sub.Ref, sub.Repository, string(sub.Environment),
		string(sub.SessionID), string(sub.LatestScanID), sub.CreatedAt,
	)
	if err := row.Scan(&sub.CreatedAt); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert subscription",
			goerr.V("key", key),
		)
	}

	return sub, nil
}

func (r *Repository) Remove(ctx context.Context, key model.SubscriptionKey) (int, error) {
	key = key.Normalize()
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions
		WHERE channel = $1 AND email = $2 AND ref = $3 AND repository = $4 AND environment = $5`,
		string(key.Channel), string(key.Email), key.Ref, key.Repository, string(key.Environment),
	)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to remove subscription",
			goerr.V("key", key),
		)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get affected rows")
	}
	return int(n), nil
}

func (r *Repository) ListByPartition(ctx context.Context, partition model.Partition) ([]*model.Subscription, error) {
	partition = partition.Normalize()
	rows, err := r.db.QueryContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE channel = $1 AND ref = $2 AND repository = $3 AND ($4::text = '' OR environment = $4)
		ORDER BY seq`,
		string(partition.Channel), partition.Ref, partition.Repository, string(partition.Environment),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions by partition",
			goerr.V("partition", partition),
		)
	}
	return scanSubscriptions(rows)
}

func (r *Repository) ListByOwner(ctx context.Context, channel types.Channel, email types.Email, env types.Environment) ([]*model.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE channel = $1 AND email = $2 AND ($3::text = '' OR environment = $3)
		ORDER BY seq`,
		string(channel), string(email), string(env),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions by owner",
			goerr.V("channel", channel),
			goerr.V("environment", env),
		)
	}
	return scanSubscriptions(rows)
}

func (r *Repository) AttachScanReference(ctx context.Context, partition model.Partition, scanID types.ScanID) (int, error) {
	partition = partition.Normalize()
	res, err := r.db.ExecContext(ctx, `UPDATE subscriptions SET latest_scan_id = $5, updated_at = $6
		WHERE channel = $1 AND ref = $2 AND repository = $3 AND ($4::text = '' OR environment = $4)`,
		string(partition.Channel), partition.Ref, partition.Repository, string(partition.Environment),
		string(scanID), time.Now().UTC(),
	)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to attach scan reference",
			goerr.V("partition", partition),
			goerr.V("scanID", scanID),
		)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get affected rows")
	}
	return int(n), nil
}

func scanSubscriptions(rows *sql.Rows) ([]*model.Subscription, error) {
	defer rows.Close()

	var subs []*model.Subscription
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(
			&sub.Channel, &sub.Email, &sub.Ref, &sub.Repository, &sub.Environment,
			&sub.SessionID, &sub.LatestScanID, &sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, goerr.Wrap(err, "failed to scan subscription row")
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate subscription rows")
	}
	return subs, nil
}
