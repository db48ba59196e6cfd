package config

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry configures error reporting. Without a DSN errors are only logged.
type Sentry struct {
	dsn         string
	environment string
	release     string
	sampleRate  float64
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN",
			Category:    "Sentry",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("SCANHOOK_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Destination: &x.environment,
			Sources:     cli.EnvVars("SCANHOOK_SENTRY_ENV"),
		},
		&cli.StringFlag{
			Name:        "sentry-release",
			Usage:       "Release name attached to reported errors",
			Category:    "Sentry",
			Destination: &x.release,
			Sources:     cli.EnvVars("SCANHOOK_SENTRY_RELEASE"),
		},
		&cli.FloatFlag{
			Name:        "sentry-sample-rate",
			Usage:       "Ratio of errors sent to Sentry (0.0 - 1.0)",
			Category:    "Sentry",
			Value:       1.0,
			Destination: &x.sampleRate,
			Sources:     cli.EnvVars("SCANHOOK_SENTRY_SAMPLE_RATE"),
		},
	}
}

func (x *Sentry) Configure(ctx context.Context) error {
	if x.dsn == "" {
		logging.From(ctx).Warn("sentry is not configured")
		return nil
	}
	if x.sampleRate < 0 || x.sampleRate > 1 {
		return goerr.Wrap(types.ErrInvalidOption, "sentry sample rate must be between 0 and 1",
			goerr.V("sample_rate", x.sampleRate))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.environment,
		Release:     x.release,
		SampleRate:  x.sampleRate,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry")
	}

	return nil
}

func (x *Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.dsn != ""),
		slog.String("environment", x.environment),
		slog.String("release", x.release),
		slog.Float64("sample_rate", x.sampleRate),
	)
}
