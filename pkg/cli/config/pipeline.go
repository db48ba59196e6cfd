package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Pipeline configures how test runs are driven and reported.
type Pipeline struct {
	environment       string
	severityLevels    []string
	threshold         string
	pollInterval      time.Duration
	pollTimeout       time.Duration
	resultsURL        string
	statusContext     string
	uploadConcurrency int64
	maxFileSize       int64
	maxUploadSize     int64
}

func (x *Pipeline) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "environment",
			Usage:       "Subscription environment served by this instance. Empty notifies every environment",
			Category:    "Pipeline",
			Destination: &x.environment,
			Sources:     cli.EnvVars("SCANHOOK_ENVIRONMENT"),
		},
		&cli.StringSliceFlag{
			Name:        "severity-levels",
			Usage:       "Severity labels from lowest to highest",
			Category:    "Pipeline",
			Value:       []string{"low", "medium", "high"},
			Destination: &x.severityLevels,
			Sources:     cli.EnvVars("SCANHOOK_SEVERITY_LEVELS"),
		},
		&cli.StringFlag{
			Name:        "severity-threshold",
			Usage:       "Lowest severity that fails a run",
			Category:    "Pipeline",
			Value:       "medium",
			Destination: &x.threshold,
			Sources:     cli.EnvVars("SCANHOOK_SEVERITY_THRESHOLD"),
		},
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Interval of test status polling",
			Category:    "Pipeline",
			Value:       usecase.DefaultPollInterval,
			Destination: &x.pollInterval,
			Sources:     cli.EnvVars("SCANHOOK_POLL_INTERVAL"),
		},
		&cli.DurationFlag{
			Name:        "poll-timeout",
			Usage:       "Maximum wait for a test run",
			Category:    "Pipeline",
			Value:       usecase.DefaultPollTimeout,
			Destination: &x.pollTimeout,
			Sources:     cli.EnvVars("SCANHOOK_POLL_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "results-url",
			Usage:       "Prefix of commit status target URLs, the test ID is appended",
			Category:    "Pipeline",
			Destination: &x.resultsURL,
			Sources:     cli.EnvVars("SCANHOOK_RESULTS_URL"),
		},
		&cli.StringFlag{
			Name:        "status-context",
			Usage:       "Commit status context",
			Category:    "Pipeline",
			Value:       usecase.DefaultStatusContext,
			Destination: &x.statusContext,
			Sources:     cli.EnvVars("SCANHOOK_STATUS_CONTEXT"),
		},
		&cli.Int64Flag{
			Name:        "upload-concurrency",
			Usage:       "Concurrent blob downloads while uploading a tree",
			Category:    "Pipeline",
			Value:       usecase.DefaultUploadConcurrency,
			Destination: &x.uploadConcurrency,
			Sources:     cli.EnvVars("SCANHOOK_UPLOAD_CONCURRENCY"),
		},
		&cli.Int64Flag{
			Name:        "max-file-size",
			Usage:       "Files larger than this many bytes are not uploaded",
			Category:    "Pipeline",
			Value:       usecase.DefaultMaxFileSize,
			Destination: &x.maxFileSize,
			Sources:     cli.EnvVars("SCANHOOK_MAX_FILE_SIZE"),
		},
		&cli.Int64Flag{
			Name:        "max-upload-size",
			Usage:       "Total bytes uploaded for one tree, larger trees fail the run. 0 disables the cap",
			Category:    "Pipeline",
			Value:       usecase.DefaultMaxUploadSize,
			Destination: &x.maxUploadSize,
			Sources:     cli.EnvVars("SCANHOOK_MAX_UPLOAD_SIZE"),
		},
	}
}

func (x *Pipeline) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("environment", x.environment),
		slog.Any("severityLevels", x.severityLevels),
		slog.String("threshold", x.threshold),
		slog.Duration("pollInterval", x.pollInterval),
		slog.Duration("pollTimeout", x.pollTimeout),
		slog.String("resultsURL", x.resultsURL),
		slog.String("statusContext", x.statusContext),
		slog.Int64("maxUploadSize", x.maxUploadSize),
	)
}

// Options builds use case options. The severity policy is validated here so
// that a broken configuration fails at startup.
func (x *Pipeline) Options() ([]usecase.Option, error) {
	levels := make([]model.Severity, len(x.severityLevels))
	for i, lv := range x.severityLevels {
		levels[i] = model.Severity(lv)
	}
	policy, err := model.NewSeverityPolicy(levels, model.Severity(x.threshold))
	if err != nil {
		return nil, err
	}

	options := []usecase.Option{
		usecase.WithSeverityPolicy(policy),
		usecase.WithEnvironment(types.Environment(x.environment)),
		usecase.WithResultsURL(x.resultsURL),
	}
	if x.pollInterval > 0 {
		options = append(options, usecase.WithPollInterval(x.pollInterval))
	}
	if x.pollTimeout > 0 {
		options = append(options, usecase.WithPollTimeout(x.pollTimeout))
	}
	if x.statusContext != "" {
		options = append(options, usecase.WithStatusContext(x.statusContext))
	}
	if x.uploadConcurrency > 0 {
		options = append(options, usecase.WithUploadConcurrency(int(x.uploadConcurrency)))
	}
	if x.maxFileSize > 0 {
		options = append(options, usecase.WithMaxFileSize(int(x.maxFileSize)))
	}

	if x.maxUploadSize >= 0 {
		options = append(options, usecase.WithMaxUploadSize(x.maxUploadSize))
	}

	return options, nil
}
