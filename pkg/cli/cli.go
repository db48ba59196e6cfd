package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

// loadEnvFile loads variables from an env file. A missing file is not an
// error; variables already set in the environment take precedence.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

func (x *CLI) Run(argv []string) error {
	var (
		logLevel  string
		logFormat string
		logOutput string
	)

	app := &cli.Command{
		Name:  "scanhook",
		Usage: "Run static analysis for pushed commits and report the results as commit statuses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [trace|debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("SCANHOOK_LOG_LEVEL"),
				Destination: &logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Sources:     cli.EnvVars("SCANHOOK_LOG_FORMAT"),
				Destination: &logFormat,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stdout|stderr|<file>]",
				Aliases:     []string{"o"},
				Sources:     cli.EnvVars("SCANHOOK_LOG_OUTPUT"),
				Destination: &logOutput,
				Value:       "-",
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Load environment variables from the file before reading flags",
				Sources: cli.EnvVars("SCANHOOK_ENV_FILE"),
				Value:   ".env",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			runCommand(),
			subscriptionCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := ConfigureLogging(logFormat, logLevel, logOutput); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
	}

	// The env file must be loaded before flags read their sources.
	if err := loadEnvFile(envFileFromArgs(argv)); err != nil {
		return err
	}

	if err := app.Run(context.Background(), argv); err != nil {
		logging.Default().Error("fatal error", "error", err)
		return err
	}

	return nil
}

// envFileFromArgs finds the env file location ahead of flag parsing.
func envFileFromArgs(argv []string) string {
	for i, arg := range argv {
		if arg == "--env-file" && i+1 < len(argv) {
			return argv[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
	}
	if v, ok := os.LookupEnv("SCANHOOK_ENV_FILE"); ok {
		return v
	}
	return ".env"
}
