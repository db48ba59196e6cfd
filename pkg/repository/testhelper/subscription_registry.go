package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// TestSubscriptionRegistry runs all test cases for a SubscriptionRegistry
// implementation
func TestSubscriptionRegistry(t *testing.T, registry interfaces.SubscriptionRegistry) {
	t.Run("UpsertAndRemove", func(t *testing.T) {
		TestUpsertAndRemove(t, registry)
	})
	t.Run("PartitionIsolation", func(t *testing.T) {
		TestPartitionIsolation(t, registry)
	})
	t.Run("ListByOwner", func(t *testing.T) {
		TestListByOwner(t, registry)
	})
	t.Run("AttachScanReference", func(t *testing.T) {
		TestAttachScanReference(t, registry)
	})
}

func newKey(repository, env string) model.SubscriptionKey {
	return model.SubscriptionKey{
		Channel:     types.ChannelGitHub,
		Email:       types.Email(fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])),
		Ref:         "refs/heads/main",
		Repository:  repository,
		Environment: types.Environment(env),
	}
}

// TestUpsertAndRemove checks upsert idempotency and removal counts.
func TestUpsertAndRemove(t *testing.T, registry interfaces.SubscriptionRegistry) {
	ctx := context.Background()
	key := newKey(randomRepository(), "prod")

	sub, err := registry.Upsert(ctx, key, model.SubscriptionData{SessionID: "sid-1"})
	gt.NoError(t, err)
	gt.V(t, sub.Ref).Equal("main")
	gt.V(t, sub.SessionID).Equal(types.SessionID("sid-1"))

	// same key with short ref form updates the same subscription
	key.Ref = "main"
	updated, err := registry.Upsert(ctx, key, model.SubscriptionData{SessionID: "sid-2"})
	gt.NoError(t, err)
	gt.V(t, updated.CreatedAt.Unix()).Equal(sub.CreatedAt.Unix())

	subs, err := registry.ListByPartition(ctx, key.Partition())
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(1)
	gt.V(t, subs[0].SessionID).Equal(types.SessionID("sid-2"))

	n, err := registry.Remove(ctx, key)
	gt.NoError(t, err)
	gt.V(t, n).Equal(1)

	n, err = registry.Remove(ctx, key)
	gt.NoError(t, err)
	gt.V(t, n).Equal(0)

	subs, err = registry.ListByPartition(ctx, key.Partition())
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(0)

	key.Email = ""
	_, err = registry.Upsert(ctx, key, model.SubscriptionData{SessionID: "sid-3"})
	gt.Error(t, err)
}

// TestPartitionIsolation checks that partitions never leak into each other
// and that an empty environment spans every environment.
func TestPartitionIsolation(t *testing.T, registry interfaces.SubscriptionRegistry) {
	ctx := context.Background()
	repository := randomRepository()

	prod1 := newKey(repository, "prod")
	prod2 := newKey(repository, "prod")
	staging := newKey(repository, "staging")
	otherRef := newKey(repository, "prod")
	otherRef.Ref = "develop"

	for _, key := range []model.SubscriptionKey{prod1, prod2, staging, otherRef} {
		_, err := registry.Upsert(ctx, key, model.SubscriptionData{SessionID: "sid"})
		gt.NoError(t, err)
	}

	subs, err := registry.ListByPartition(ctx, prod1.Partition())
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(2)
	gt.V(t, subs[0].Email).Equal(prod1.Email)
	gt.V(t, subs[1].Email).Equal(prod2.Email)

	all := prod1.Partition()
	all.Environment = ""
	subs, err = registry.ListByPartition(ctx, all)
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(3)

	subs, err = registry.ListByPartition(ctx, otherRef.Partition())
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(1)
	gt.V(t, subs[0].Email).Equal(otherRef.Email)
}

// TestListByOwner checks owner listing with and without environment filter.
func TestListByOwner(t *testing.T, registry interfaces.SubscriptionRegistry) {
	ctx := context.Background()
	email := types.Email(fmt.Sprintf("owner-%s@example.com", uuid.NewString()[:8]))

	for _, env := range []string{"prod", "staging"} {
		key := newKey(randomRepository(), env)
		key.Email = email
		_, err := registry.Upsert(ctx, key, model.SubscriptionData{SessionID: "sid"})
		gt.NoError(t, err)
	}

	subs, err := registry.ListByOwner(ctx, types.ChannelGitHub, email, "")
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(2)

	subs, err = registry.ListByOwner(ctx, types.ChannelGitHub, email, "staging")
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(1)
	gt.V(t, subs[0].Environment).Equal(types.Environment("staging"))
}

// TestAttachScanReference checks that only the partition's subscriptions get
// the scan reference.
func TestAttachScanReference(t *testing.T, registry interfaces.SubscriptionRegistry) {
	ctx := context.Background()
	repository := randomRepository()

	prod := newKey(repository, "prod")
	staging := newKey(repository, "staging")
	for _, key := range []model.SubscriptionKey{prod, staging} {
		_, err := registry.Upsert(ctx, key, model.SubscriptionData{SessionID: "sid"})
		gt.NoError(t, err)
	}

	scanID := types.NewScanID("compare-" + uuid.NewString())
	n, err := registry.AttachScanReference(ctx, prod.Partition(), scanID)
	gt.NoError(t, err)
	gt.V(t, n).Equal(1)

	subs, err := registry.ListByPartition(ctx, prod.Partition())
	gt.NoError(t, err)
	gt.V(t, subs[0].LatestScanID).Equal(scanID)

	subs, err = registry.ListByPartition(ctx, staging.Partition())
	gt.NoError(t, err)
	gt.V(t, subs[0].LatestScanID).Equal(types.ScanID(""))
}
