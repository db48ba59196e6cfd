package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// TestScanLedger runs all test cases for a ScanLedger implementation
func TestScanLedger(t *testing.T, ledger interfaces.ScanLedger) {
	t.Run("UpsertRawEventDedup", func(t *testing.T) {
		TestUpsertRawEventDedup(t, ledger)
	})
	t.Run("UpsertRawEventRace", func(t *testing.T) {
		TestUpsertRawEventRace(t, ledger)
	})
	t.Run("AttachResults", func(t *testing.T) {
		TestAttachResults(t, ledger)
	})
	t.Run("FindLatest", func(t *testing.T) {
		TestFindLatest(t, ledger)
	})
}

func newScanRecord(repository, ref string, createdAt time.Time) *model.ScanRecord {
	compare := fmt.Sprintf("https://github.com/%s/compare/%s...%s", repository, uuid.NewString()[:8], uuid.NewString()[:8])
	repo, _ := model.ParseGitHubRepo(repository)
	ev := &model.WebhookEvent{
		Kind:         model.EventKindPush,
		Compare:      compare,
		Ref:          ref,
		Repo:         repo,
		HeadCommitID: types.CommitSHA(uuid.NewString()),
		TreeID:       types.TreeSHA(uuid.NewString()),
		Payload:      []byte(`{"ref":"` + ref + `"}`),
	}
	return model.NewScanRecord(types.ChannelGitHub, ev, createdAt)
}

func randomRepository() string {
	return fmt.Sprintf("owner-%s/repo-%s", uuid.NewString()[:8], uuid.NewString()[:8])
}

// TestUpsertRawEventDedup checks that only the first record of a comparison
// identifier is stored.
func TestUpsertRawEventDedup(t *testing.T, ledger interfaces.ScanLedger) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := newScanRecord(randomRepository(), "refs/heads/main", now)

	existed, err := ledger.UpsertRawEvent(ctx, rec)
	gt.NoError(t, err)
	gt.False(t, existed)

	second := *rec
	second.CommitID = "other"
	existed, err = ledger.UpsertRawEvent(ctx, &second)
	gt.NoError(t, err)
	gt.True(t, existed)

	found, err := ledger.FindByID(ctx, rec.ID)
	gt.NoError(t, err)
	gt.True(t, found != nil)
	gt.V(t, found.Compare).Equal(rec.Compare)
	gt.V(t, found.CommitID).Equal(rec.CommitID)
	gt.V(t, found.Ref).Equal("main")
	gt.False(t, found.Completed())

	missing, err := ledger.FindByID(ctx, types.NewScanID("no-such-compare-"+uuid.NewString()))
	gt.NoError(t, err)
	gt.True(t, missing == nil)
}

// TestUpsertRawEventRace checks that exactly one of concurrent writers of the
// same comparison identifier wins.
func TestUpsertRawEventRace(t *testing.T, ledger interfaces.ScanLedger) {
	ctx := context.Background()
	rec := newScanRecord(randomRepository(), "main", time.Now().UTC())

	const writers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := *rec
			existed, err := ledger.UpsertRawEvent(ctx, &c)
			if err != nil {
				t.Error(err)
				return
			}
			if !existed {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	gt.V(t, wins).Equal(1)
}

// TestAttachResults checks that outcomes are stored on existing records only.
func TestAttachResults(t *testing.T, ledger interfaces.ScanLedger) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := newScanRecord(randomRepository(), "main", now)

	_, err := ledger.UpsertRawEvent(ctx, rec)
	gt.NoError(t, err)

	outcome := &model.RunOutcome{
		TreeID: "t1",
		TestID: "test-1",
		Results: []*model.Finding{
			{ID: "f1", Title: "hardcoded secret", Severity: model.SeverityHigh},
		},
		Matrix:    model.SeverityMatrix{model.SeverityLow: 0, model.SeverityMedium: 0, model.SeverityHigh: 1},
		Verdict:   model.VerdictFailure,
		UpdatedAt: now.Add(time.Minute),
	}

	ok, err := ledger.AttachResults(ctx, rec.Compare, outcome)
	gt.NoError(t, err)
	gt.True(t, ok)

	found, err := ledger.FindByID(ctx, rec.ID)
	gt.NoError(t, err)
	gt.True(t, found.Completed())
	gt.V(t, found.TreeID).Equal(types.TreeSHA("t1"))
	gt.V(t, found.TestID).Equal(types.TestID("test-1"))
	gt.V(t, found.Verdict).Equal(model.VerdictFailure)
	gt.V(t, len(found.Results)).Equal(1)
	gt.V(t, found.Results[0].Severity).Equal(model.SeverityHigh)
	gt.V(t, found.Matrix[model.SeverityHigh]).Equal(1)

	ok, err = ledger.AttachResults(ctx, "no-such-compare-"+uuid.NewString(), outcome)
	gt.NoError(t, err)
	gt.False(t, ok)
}

// TestFindLatest checks that the newest record of (ref, repository) wins.
func TestFindLatest(t *testing.T, ledger interfaces.ScanLedger) {
	ctx := context.Background()
	repository := randomRepository()
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := newScanRecord(repository, "refs/heads/main", base)
	newer := newScanRecord(repository, "main", base.Add(time.Minute))
	other := newScanRecord(repository, "develop", base.Add(2*time.Minute))

	for _, rec := range []*model.ScanRecord{older, newer, other} {
		_, err := ledger.UpsertRawEvent(ctx, rec)
		gt.NoError(t, err)
	}

	latest, err := ledger.FindLatest(ctx, "refs/heads/main", repository)
	gt.NoError(t, err)
	gt.True(t, latest != nil)
	gt.V(t, latest.ID).Equal(newer.ID)

	none, err := ledger.FindLatest(ctx, "main", randomRepository())
	gt.NoError(t, err)
	gt.True(t, none == nil)
}
