package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
)

// scanArchive is the object written to storage for every finished scan.
type scanArchive struct {
	Summary *model.ScanSummary `json:"summary"`
	Results []*model.Finding   `json:"results"`
}

func (x *UseCase) newScanSummary(job *model.TestRunJob, outcome *model.RunOutcome, subscribers int, duration int64) *model.ScanSummary {
	return &model.ScanSummary{
		ScanID:      job.ScanID.String(),
		Compare:     job.Compare,
		Channel:     job.Partition.Channel.String(),
		Repository:  job.Partition.Repository,
		Ref:         job.Partition.Ref,
		CommitID:    string(job.CommitID),
		TreeID:      string(outcome.TreeID),
		TestID:      outcome.TestID.String(),
		Verdict:     string(outcome.Verdict),
		Error:       outcome.Error,
		Threshold:   string(x.policy.Threshold()),
		Findings:    len(outcome.Results),
		Matrix:      outcome.Matrix.Counts(),
		Subscribers: subscribers,
		DurationSec: duration,
		Timestamp:   outcome.UpdatedAt,
	}
}

// exportScan copies a finished scan to the analytics table and the archive
// bucket when they are configured. Both targets are attempted even if one
// of them fails.
func (x *UseCase) exportScan(ctx context.Context, job *model.TestRunJob, outcome *model.RunOutcome, subscribers int, duration int64) error {
	summary := x.newScanSummary(job, outcome, subscribers, duration)

	var errs []error
	if bq := x.clients.BigQuery(); bq != nil {
		if err := insertScanSummary(ctx, bq, summary); err != nil {
			errs = append(errs, err)
		}
	}

	if storage := x.clients.ObjectStorage(); storage != nil {
		raw, err := json.Marshal(&scanArchive{Summary: summary, Results: outcome.Results})
		if err != nil {
			errs = append(errs, goerr.Wrap(err, "failed to marshal scan archive"))
		} else {
			path := archivePath(summary)
			if err := storage.Put(ctx, path, "application/json", bytes.NewReader(raw)); err != nil {
				errs = append(errs, goerr.Wrap(err, "failed to archive scan", goerr.V("path", path)))
			}
		}
	}

	return errors.Join(errs...)
}

func archivePath(summary *model.ScanSummary) string {
	return "scans/" + summary.Repository + "/" + summary.ScanID + ".json"
}

func insertScanSummary(ctx context.Context, bq interfaces.BigQuery, summary *model.ScanSummary) error {
	schema, err := createOrUpdateBigQueryTable(ctx, bq, summary)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, summary, interfaces.WithInsertID(summary.ScanID)); err != nil {
		return goerr.Wrap(err, "failed to insert scan summary to BigQuery", goerr.V("scan_id", summary.ScanID))
	}
	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, summary *model.ScanSummary) (bigquery.Schema, error) {
	schema, err := bqs.Infer(summary)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer scan summary schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
