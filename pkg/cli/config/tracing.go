package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/utils/tracing"
	"github.com/urfave/cli/v3"
)

type Tracing struct {
	output string
}

func (x *Tracing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "trace-output",
			Usage:       "Export trace spans to [stdout|stderr|<file>]. Tracing is disabled when empty",
			Category:    "Tracing",
			Destination: &x.output,
			Sources:     cli.EnvVars("SCANHOOK_TRACE_OUTPUT"),
		},
	}
}

func (x *Tracing) LogValue() slog.Value {
	return slog.GroupValue(slog.String("output", x.output))
}

// Configure installs the tracer provider. The returned function flushes
// spans and closes the output; it is a no-op when tracing is disabled.
func (x *Tracing) Configure() (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	var (
		w       *os.File
		closeFn = func() error { return nil }
	)
	switch x.output {
	case "":
		return noop, nil
	case "stdout", "-":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.Create(filepath.Clean(x.output))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open trace output", goerr.V("path", x.output))
		}
		w = f
		closeFn = f.Close
	}

	shutdown, err := tracing.Configure(w)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	return func(ctx context.Context) error {
		if err := shutdown(ctx); err != nil {
			return goerr.Wrap(err, "failed to shutdown tracer")
		}
		return closeFn()
	}, nil
}
