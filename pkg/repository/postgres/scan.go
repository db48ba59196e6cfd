package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

const scanColumns = `id, compare, channel, ref, repository, commit_id, payload,
	tree_id, test_id, results, matrix, verdict, error, created_at, updated_at`

func (r *Repository) UpsertRawEvent(ctx context.Context, record *model.ScanRecord) (bool, error) {
	var payload any
	if len(record.Payload) > 0 {
		payload = []byte(record.Payload)
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO github_scans
		(compare, id, channel, ref, repository, commit_id, payload, tree_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (compare) DO NOTHING`,
		record.Compare,
		string(types.NewScanID(record.Compare)),
		string(record.Channel),
		model.NormalizeRef(record.Ref),
		record.Repository,
		string(record.CommitID),
		payload,
		string(record.TreeID),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return false, goerr.Wrap(err, "failed to insert scan record",
			goerr.V("compare", record.Compare),
		)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, goerr.Wrap(err, "failed to get affected rows")
	}
	return n == 0, nil
}

func (r *Repository) AttachResults(ctx context.Context, compare string, outcome *model.RunOutcome) (bool, error) {
	results, err := json.Marshal(outcome.Results)
	if err != nil {
		return false, goerr.Wrap(err, "failed to marshal results")
	}
	matrix, err := json.Marshal(outcome.Matrix)
	if err != nil {
		return false, goerr.Wrap(err, "failed to marshal matrix")
	}

	res, err := r.db.ExecContext(ctx, `UPDATE github_scans SET
		tree_id = CASE WHEN $2::text = '' THEN tree_id ELSE $2 END,
		test_id = $3, results = $4, matrix = $5, verdict = $6, error = $7, updated_at = $8
		WHERE compare = $1`,
		compare,
		string(outcome.TreeID),
		string(outcome.TestID),
		results,
		matrix,
		string(outcome.Verdict),
		outcome.Error,
		outcome.UpdatedAt,
	)
	if err != nil {
		return false, goerr.Wrap(err, "failed to attach results",
			goerr.V("compare", compare),
		)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, goerr.Wrap(err, "failed to get affected rows")
	}
	return n > 0, nil
}

func (r *Repository) FindLatest(ctx context.Context, ref, repository string) (*model.ScanRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM github_scans
		WHERE ref = $1 AND repository = $2
		ORDER BY created_at DESC LIMIT 1`,
		model.NormalizeRef(ref), repository,
	)

	rec, err := scanRecord(row)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find latest scan",
			goerr.V("ref", ref),
			goerr.V("repository", repository),
		)
	}
	return rec, nil
}

func (r *Repository) FindByID(ctx context.Context, id types.ScanID) (*model.ScanRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM github_scans WHERE id = $1`, string(id))

	rec, err := scanRecord(row)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find scan",
			goerr.V("id", id),
		)
	}
	return rec, nil
}

func scanRecord(row *sql.Row) (*model.ScanRecord, error) {
	var (
		rec                      model.ScanRecord
		payload, results, matrix []byte
	)

	err := row.Scan(
		&rec.ID, &rec.Compare, &rec.Channel, &rec.Ref, &rec.Repository, &rec.CommitID, &payload,
		&rec.TreeID, &rec.TestID, &results, &matrix, &rec.Verdict, &rec.Error, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(payload) > 0 {
		rec.Payload = json.RawMessage(payload)
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &rec.Results); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal results")
		}
	}
	if len(matrix) > 0 {
		if err := json.Unmarshal(matrix, &rec.Matrix); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal matrix")
		}
	}

	return &rec, nil
}
