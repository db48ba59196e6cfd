package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/scanhook/pkg/cli/config"
	"github.com/secmon-lab/scanhook/pkg/controller/server"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/usecase"
	"github.com/secmon-lab/scanhook/pkg/utils/async"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/secmon-lab/scanhook/pkg/utils/safe"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr            string
		shutdownTimeout time.Duration

		provider  config.TestProvider
		githubApp config.GitHubApp
		pipeline  config.Pipeline
		firestore config.Firestore
		postgres  config.Postgres
		bigQuery  config.BigQuery
		storage   config.Storage
		sentry    config.Sentry
		tracing   config.Tracing
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("SCANHOOK_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Wait for running tests at shutdown before canceling them",
			Value:       time.Minute,
			Sources:     cli.EnvVars("SCANHOOK_SHUTDOWN_TIMEOUT"),
			Destination: &shutdownTimeout,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			provider.Flags(),
			githubApp.Flags(),
			pipeline.Flags(),
			firestore.Flags(),
			postgres.Flags(),
			bigQuery.Flags(),
			storage.Flags(),
			sentry.Flags(),
			tracing.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Provider", &provider),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Pipeline", &pipeline),
				slog.Any("Firestore", &firestore),
				slog.Any("Postgres", &postgres),
				slog.Any("BigQuery", &bigQuery),
				slog.Any("Storage", &storage),
				slog.Any("Sentry", &sentry),
				slog.Any("Tracing", &tracing),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			shutdownTracer, err := tracing.Configure()
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracer(context.Background()); err != nil {
					logging.Default().Warn("failed to shutdown tracer", slog.Any("error", err))
				}
			}()

			ucOptions, err := pipeline.Options()
			if err != nil {
				return err
			}

			providerClient, err := provider.New()
			if err != nil {
				return err
			}
			ghClient, err := githubApp.New()
			if err != nil {
				return err
			}

			infraOptions := []infra.Option{
				infra.WithTestProvider(providerClient),
				infra.WithGitHub(ghClient),
			}

			repoOptions, closeRepo, err := repositoryOptions(ctx, &firestore, &postgres)
			if err != nil {
				return err
			}
			defer closeRepo()
			infraOptions = append(infraOptions, repoOptions...)

			if bqClient, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if bqClient != nil {
				defer safe.Close(bqClient)
				infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
			}

			if gcsClient, err := storage.NewClient(ctx); err != nil {
				return err
			} else if gcsClient != nil {
				defer safe.Close(gcsClient)
				infraOptions = append(infraOptions, infra.WithObjectStorage(gcsClient))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients, ucOptions...)
			runner := async.New()
			s := server.New(uc,
				server.WithGitHubSecret(githubApp.Secret()),
				server.WithRunner(runner),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Handler(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}

				logging.Default().Info("waiting for running tests", "timeout", shutdownTimeout)
				jobCtx, jobCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer jobCancel()
				if err := runner.Shutdown(jobCtx); err != nil {
					logging.Default().Warn("running tests were canceled", slog.Any("error", err))
				}
			}

			return nil
		},
	}
}
