package firestore_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/repository/firestore"
	"github.com/secmon-lab/scanhook/pkg/repository/testhelper"
	"github.com/secmon-lab/scanhook/pkg/utils/testutil"
)

func newRepository(t *testing.T) *firestore.Repository {
	env := testutil.GetEnvsOrSkip(t, "TEST_FIRESTORE_PROJECT_ID", "TEST_FIRESTORE_DATABASE_ID")

	repo, err := firestore.New(context.Background(), env[0], env[1])
	gt.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestFirestoreScanLedger(t *testing.T) {
	testhelper.TestScanLedger(t, newRepository(t))
}

func TestFirestoreSubscriptionRegistry(t *testing.T) {
	testhelper.TestSubscriptionRegistry(t, newRepository(t))
}

func TestToSubscriptionDocID(t *testing.T) {
	key := model.SubscriptionKey{
		Channel:     "github",
		Email:       "alice@example.com",
		Ref:         "refs/heads/feature/foo",
		Repository:  "acme/widgets",
		Environment: "prod",
	}

	id, err := firestore.ToSubscriptionDocID(key)
	gt.NoError(t, err)
	gt.False(t, strings.Contains(id, "/"))
	gt.V(t, id).Equal("github:prod:acme%2Fwidgets:feature%2Ffoo:alice@example.com")

	// short and full ref forms share a document
	key.Ref = "feature/foo"
	id2, err := firestore.ToSubscriptionDocID(key)
	gt.NoError(t, err)
	gt.V(t, id2).Equal(id)

	key.Email = ""
	_, err = firestore.ToSubscriptionDocID(key)
	gt.Error(t, err)
}
