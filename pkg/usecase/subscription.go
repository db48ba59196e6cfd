package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

func (x *UseCase) verifySession(ctx context.Context, sid types.SessionID) (*model.VerifiedIdentity, error) {
	identity, err := x.VerifyIdentity(ctx, sid, "")
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, goerr.Wrap(types.ErrUnauthorized, "session is not verified")
	}
	return identity, nil
}

// Subscribe registers the session's owner for pushes of (ref, repository)
// in an environment. When the latest scan of the branch covers its current
// tree, the scan is reused; otherwise the output asks for a new scan.
func (x *UseCase) Subscribe(ctx context.Context, input *model.SubscribeInput) (*model.SubscribeOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := x.verifySession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	key := model.SubscriptionKey{
		Channel:     input.Channel,
		Email:       identity.Email,
		Ref:         input.Ref,
		Repository:  input.Repository,
		Environment: input.Environment,
	}.Normalize()

	registry := x.clients.SubscriptionRegistry()
	sub, err := registry.Upsert(ctx, key, model.SubscriptionData{SessionID: input.SessionID})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store subscription", goerr.V("key", key))
	}
	output := &model.SubscribeOutput{Subscription: sub, ScanRequired: true}

	latest, err := x.clients.ScanLedger().FindLatest(ctx, key.Ref, key.Repository)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find latest scan", goerr.V("key", key))
	}
	if latest == nil || !latest.Reusable() || x.clients.GitHub() == nil {
		return output, nil
	}

	repo, err := model.ParseGitHubRepo(key.Repository)
	if err != nil {
		return nil, err
	}
	treeID, err := x.clients.GitHub().GetBranchTree(ctx, interfaces.GitHubAuth{Token: identity.ProviderToken}, repo, key.Ref)
	if err != nil {
		logging.From(ctx).Warn("Failed to resolve branch tree", slog.Any("error", err))
		return output, nil
	}
	output.TreeID = treeID

	if treeID != latest.TreeID {
		return output, nil
	}

	if _, err := registry.AttachScanReference(ctx, key.Partition(), latest.ID); err != nil {
		return nil, goerr.Wrap(err, "failed to attach scan reference", goerr.V("key", key))
	}
	sub.LatestScanID = latest.ID
	output.LatestScan = latest
	output.ScanRequired = false

	return output, nil
}

// Unsubscribe removes the session owner's subscription and returns the
// number of removed entries.
func (x *UseCase) Unsubscribe(ctx context.Context, input *model.SubscribeInput) (int, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	identity, err := x.verifySession(ctx, input.SessionID)
	if err != nil {
		return 0, err
	}

	key := model.SubscriptionKey{
		Channel:     input.Channel,
		Email:       identity.Email,
		Ref:         input.Ref,
		Repository:  input.Repository,
		Environment: input.Environment,
	}.Normalize()

	n, err := x.clients.SubscriptionRegistry().Remove(ctx, key)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to remove subscription", goerr.V("key", key))
	}
	return n, nil
}

func (x *UseCase) ListSubscriptions(ctx context.Context, sid types.SessionID, channel types.Channel, env types.Environment) ([]*model.Subscription, error) {
	identity, err := x.verifySession(ctx, sid)
	if err != nil {
		return nil, err
	}

	subs, err := x.clients.SubscriptionRegistry().ListByOwner(ctx, channel, identity.Email, env)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions")
	}
	return subs, nil
}

// GetScan returns a scan record visible to the session's owner, which means
// the owner is subscribed to the scanned repository. It returns nil when the
// scan does not exist or is not visible.
func (x *UseCase) GetScan(ctx context.Context, sid types.SessionID, id types.ScanID) (*model.ScanRecord, error) {
	identity, err := x.verifySession(ctx, sid)
	if err != nil {
		return nil, err
	}

	scan, err := x.clients.ScanLedger().FindByID(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find scan", goerr.V("id", id))
	}
	if scan == nil {
		return nil, nil
	}

	subs, err := x.clients.SubscriptionRegistry().ListByOwner(ctx, scan.Channel, identity.Email, "")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions")
	}
	for _, sub := range subs {
		if sub.Repository == scan.Repository {
			return scan, nil
		}
	}

	return nil, nil
}
