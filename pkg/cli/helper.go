package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/cli/config"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/secmon-lab/scanhook/pkg/utils/safe"
)

// repositoryOptions selects the scan ledger and subscription registry
// backend. Without Firestore or PostgreSQL, state is kept in memory.
func repositoryOptions(ctx context.Context, fs *config.Firestore, pg *config.Postgres) ([]infra.Option, func(), error) {
	if fs.Enabled() && pg.Enabled() {
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "firestore and postgres can not be enabled at the same time")
	}

	switch {
	case fs.Enabled():
		repo, err := fs.NewRepository(ctx)
		if err != nil {
			return nil, nil, err
		}
		return []infra.Option{
			infra.WithScanLedger(repo),
			infra.WithSubscriptionRegistry(repo),
		}, func() { safe.Close(repo) }, nil

	case pg.Enabled():
		repo, err := pg.NewRepository(ctx)
		if err != nil {
			return nil, nil, err
		}
		return []infra.Option{
			infra.WithScanLedger(repo),
			infra.WithSubscriptionRegistry(repo),
		}, func() { safe.Close(repo) }, nil

	default:
		logging.From(ctx).Warn("no persistent repository is configured, scans and subscriptions are kept in memory",
			slog.Any("firestore", fs),
			slog.Any("postgres", pg),
		)
		return nil, func() {}, nil
	}
}
