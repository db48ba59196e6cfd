package postgres_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/repository/postgres"
	"github.com/secmon-lab/scanhook/pkg/repository/testhelper"
	"github.com/secmon-lab/scanhook/pkg/utils/testutil"
)

func newRepository(t *testing.T) *postgres.Repository {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	repo, err := postgres.New(context.Background(), dsn)
	gt.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestPostgresScanLedger(t *testing.T) {
	testhelper.TestScanLedger(t, newRepository(t))
}

func TestPostgresSubscriptionRegistry(t *testing.T) {
	testhelper.TestSubscriptionRegistry(t, newRepository(t))
}
