package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/bq"
	"github.com/urfave/cli/v3"
)

type BigQuery struct {
	projectID types.GoogleProjectID
	datasetID types.BQDatasetID
	tableID   types.BQTableID
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bq-project-id",
			Usage:       "BigQuery project ID for scan summaries (optional)",
			Category:    "BigQuery",
			Destination: (*string)(&x.projectID),
			Sources:     cli.EnvVars("SCANHOOK_BQ_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bq-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Destination: (*string)(&x.datasetID),
			Sources:     cli.EnvVars("SCANHOOK_BQ_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bq-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       "scans",
			Destination: (*string)(&x.tableID),
			Sources:     cli.EnvVars("SCANHOOK_BQ_TABLE_ID"),
		},
	}
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
	)
}

// NewClient returns nil without error when no project is configured.
func (x *BigQuery) NewClient(ctx context.Context) (*bq.Client, error) {
	if x.projectID == "" {
		return nil, nil
	}
	return bq.New(ctx, x.projectID, x.datasetID, x.tableID)
}
