package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

type Storage struct {
	bucket types.GCSBucket
	prefix string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket archiving scan results (optional)",
			Category:    "Cloud Storage",
			Destination: (*string)(&x.bucket),
			Sources:     cli.EnvVars("SCANHOOK_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix",
			Category:    "Cloud Storage",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("SCANHOOK_GCS_PREFIX"),
		},
	}
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// NewClient returns nil without error when no bucket is configured.
func (x *Storage) NewClient(ctx context.Context) (*gcs.Client, error) {
	if x.bucket == "" {
		return nil, nil
	}
	return gcs.New(ctx, x.bucket, x.prefix)
}
