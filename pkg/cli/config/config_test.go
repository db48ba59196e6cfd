package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/cli/config"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// parse runs flags through a command so that defaults and values are applied.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))
}

func TestPipelineOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var p config.Pipeline
		parse(t, p.Flags())

		options, err := p.Options()
		gt.NoError(t, err)
		gt.True(t, len(options) > 0)
	})

	t.Run("unknown threshold", func(t *testing.T) {
		var p config.Pipeline
		parse(t, p.Flags(), "--severity-threshold", "critical")

		_, err := p.Options()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("custom levels", func(t *testing.T) {
		var p config.Pipeline
		parse(t, p.Flags(), "--severity-levels", "info,warning,critical", "--severity-threshold", "critical")

		_, err := p.Options()
		gt.NoError(t, err)
	})
}

func TestGitHubApp(t *testing.T) {
	t.Run("token only", func(t *testing.T) {
		var g config.GitHubApp
		parse(t, g.Flags())

		client, err := g.New()
		gt.NoError(t, err)
		gt.False(t, client.AppEnabled())
	})

	t.Run("app id without key", func(t *testing.T) {
		var g config.GitHubApp
		parse(t, g.Flags(), "--github-app-id", "1234")

		_, err := g.New()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("webhook secret", func(t *testing.T) {
		var g config.GitHubApp
		parse(t, g.Flags(), "--github-webhook-secret", "s3cr3t")
		gt.V(t, g.Secret()).Equal(types.GitHubWebhookSecret("s3cr3t"))
	})
}

func TestOptionalBackends(t *testing.T) {
	var (
		bq config.BigQuery
		st config.Storage
		fs config.Firestore
		pg config.Postgres
	)
	parse(t, append(append(append(bq.Flags(), st.Flags()...), fs.Flags()...), pg.Flags()...))

	bqClient, err := bq.NewClient(t.Context())
	gt.NoError(t, err)
	gt.True(t, bqClient == nil)

	stClient, err := st.NewClient(t.Context())
	gt.NoError(t, err)
	gt.True(t, stClient == nil)

	gt.False(t, fs.Enabled())
	gt.False(t, pg.Enabled())
}

func TestTestProviderRequiresURL(t *testing.T) {
	var p config.TestProvider
	parse(t, p.Flags())

	_, err := p.New()
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func TestTracingDisabled(t *testing.T) {
	var tr config.Tracing
	parse(t, tr.Flags())

	shutdown, err := tr.Configure()
	gt.NoError(t, err)
	gt.NoError(t, shutdown(t.Context()))
}
