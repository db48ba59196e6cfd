package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

func newSubscribeInput(sid types.SessionID) *model.SubscribeInput {
	return &model.SubscribeInput{
		SessionID:   sid,
		Channel:     types.ChannelGitHub,
		Environment: "prod",
		Ref:         "refs/heads/main",
		Repository:  "acme/widgets",
	}
}

// completeScan runs a full webhook cycle so that a finished scan of tree1
// exists for acme/widgets@main.
func completeScan(t *testing.T, f *fixture) types.ScanID {
	t.Helper()
	f.subscribe(t, "bob@example.com", "sid-bob", "prod")
	result, err := f.uc.HandleWebhook(t.Context(), types.ChannelGitHub, newPushEvent("cmp-sub"))
	gt.NoError(t, err)
	gt.NoError(t, f.uc.ExecuteJob(t.Context(), result.Job))
	return result.Job.ScanID
}

func TestSubscribe(t *testing.T) {
	t.Run("scan required without previous scan", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.uc.Subscribe(t.Context(), newSubscribeInput("sid-alice"))
		gt.NoError(t, err)
		gt.True(t, out.ScanRequired)
		gt.True(t, out.LatestScan == nil)
		gt.V(t, out.Subscription.Email).Equal(types.Email("alice@example.com"))
		gt.V(t, out.Subscription.Ref).Equal("main")
	})

	t.Run("latest scan is reused when tree is unchanged", func(t *testing.T) {
		f := newFixture(t)
		scanID := completeScan(t, f)

		out, err := f.uc.Subscribe(t.Context(), newSubscribeInput("sid-alice"))
		gt.NoError(t, err)
		gt.False(t, out.ScanRequired)
		gt.True(t, out.LatestScan != nil)
		gt.V(t, out.LatestScan.ID).Equal(scanID)
		gt.V(t, out.Subscription.LatestScanID).Equal(scanID)

		subs, err := f.repo.ListByOwner(t.Context(), types.ChannelGitHub, "alice@example.com", "prod")
		gt.NoError(t, err)
		gt.V(t, subs[0].LatestScanID).Equal(scanID)
	})

	t.Run("errored scan is not reused", func(t *testing.T) {
		f := newFixture(t)
		f.provider.UploadFromTreeFunc = func(ctx context.Context, sid types.SessionID, input *model.UploadInput) error {
			return errors.New("connection reset")
		}
		completeScan(t, f)

		latest, err := f.repo.FindLatest(t.Context(), "main", "acme/widgets")
		gt.NoError(t, err)
		gt.V(t, latest.Verdict).Equal(model.VerdictError)

		out, err := f.uc.Subscribe(t.Context(), newSubscribeInput("sid-alice"))
		gt.NoError(t, err)
		gt.True(t, out.ScanRequired)
		gt.True(t, out.LatestScan == nil)
		gt.V(t, out.Subscription.LatestScanID).Equal(types.ScanID(""))
	})

	t.Run("scan required when branch moved", func(t *testing.T) {
		f := newFixture(t)
		completeScan(t, f)
		f.github.GetBranchTreeFunc = func(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, branch string) (types.TreeSHA, error) {
			gt.V(t, branch).Equal("main")
			gt.V(t, auth.Token).Equal(types.ProviderToken("token-alice"))
			return "tree2", nil
		}

		out, err := f.uc.Subscribe(t.Context(), newSubscribeInput("sid-alice"))
		gt.NoError(t, err)
		gt.True(t, out.ScanRequired)
		gt.V(t, out.TreeID).Equal(types.TreeSHA("tree2"))
	})

	t.Run("unverified session is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Subscribe(t.Context(), newSubscribeInput("sid-unknown"))
		gt.True(t, errors.Is(err, types.ErrUnauthorized))
	})

	t.Run("invalid repository is rejected", func(t *testing.T) {
		f := newFixture(t)
		input := newSubscribeInput("sid-alice")
		input.Repository = "widgets"
		_, err := f.uc.Subscribe(t.Context(), input)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})
}

func TestUnsubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.uc.Subscribe(ctx, newSubscribeInput("sid-alice"))
	gt.NoError(t, err)

	n, err := f.uc.Unsubscribe(ctx, newSubscribeInput("sid-alice"))
	gt.NoError(t, err)
	gt.V(t, n).Equal(1)

	n, err = f.uc.Unsubscribe(ctx, newSubscribeInput("sid-alice"))
	gt.NoError(t, err)
	gt.V(t, n).Equal(0)
}

func TestListSubscriptions(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.uc.Subscribe(ctx, newSubscribeInput("sid-alice"))
	gt.NoError(t, err)
	_, err = f.uc.Subscribe(ctx, newSubscribeInput("sid-bob"))
	gt.NoError(t, err)

	subs, err := f.uc.ListSubscriptions(ctx, "sid-alice", types.ChannelGitHub, "prod")
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(1)
	gt.V(t, subs[0].Email).Equal(types.Email("alice@example.com"))

	subs, err = f.uc.ListSubscriptions(ctx, "sid-alice", types.ChannelGitHub, "staging")
	gt.NoError(t, err)
	gt.V(t, len(subs)).Equal(0)

	_, err = f.uc.ListSubscriptions(ctx, "", types.ChannelGitHub, "prod")
	gt.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestGetScan(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	scanID := completeScan(t, f)

	t.Run("subscriber can read the scan", func(t *testing.T) {
		scan, err := f.uc.GetScan(ctx, "sid-bob", scanID)
		gt.NoError(t, err)
		gt.True(t, scan != nil)
		gt.V(t, scan.ID).Equal(scanID)
	})

	t.Run("non subscriber cannot read the scan", func(t *testing.T) {
		scan, err := f.uc.GetScan(ctx, "sid-carol", scanID)
		gt.NoError(t, err)
		gt.True(t, scan == nil)
	})

	t.Run("unknown scan", func(t *testing.T) {
		scan, err := f.uc.GetScan(ctx, "sid-bob", "no-such-scan")
		gt.NoError(t, err)
		gt.True(t, scan == nil)
	})
}

func TestVerifyIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	t.Run("valid session", func(t *testing.T) {
		identity, err := f.uc.VerifyIdentity(ctx, "sid-alice", "Alice@Example.com")
		gt.NoError(t, err)
		gt.True(t, identity.CanDrive())
		gt.V(t, identity.SessionID).Equal(types.SessionID("sid-alice"))
		gt.V(t, identity.Public().ProviderToken).Equal(types.ProviderToken(""))
	})

	t.Run("email mismatch", func(t *testing.T) {
		identity, err := f.uc.VerifyIdentity(ctx, "sid-alice", "bob@example.com")
		gt.NoError(t, err)
		gt.True(t, identity == nil)
	})

	t.Run("provider failure", func(t *testing.T) {
		identity, err := f.uc.VerifyIdentity(ctx, "sid-unknown", "")
		gt.NoError(t, err)
		gt.True(t, identity == nil)
	})

	t.Run("empty session", func(t *testing.T) {
		identity, err := f.uc.VerifyIdentity(ctx, "", "")
		gt.NoError(t, err)
		gt.True(t, identity == nil)
		gt.V(t, len(f.provider.GetUserDataCalls())).Equal(3)
	})
}
