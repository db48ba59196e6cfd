package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/mock"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/repository/memory"
	"github.com/secmon-lab/scanhook/pkg/usecase"
)

const resultsURL = "https://results.example.com/tests/"

// fixture wires a use case to mocked providers and an in-memory repository.
// Sessions "sid-<name>" resolve to "<name>@example.com" with a provider token.
type fixture struct {
	uc       *usecase.UseCase
	repo     *memory.Repository
	provider *mock.TestProviderMock
	github   *mock.GitHubMock

	mu       sync.Mutex
	statuses []*model.CommitStatus
}

func newFixture(t *testing.T, options ...usecase.Option) *fixture {
	t.Helper()

	f := &fixture{
		repo: memory.New(),
	}

	f.provider = &mock.TestProviderMock{
		GetUserDataFunc: func(ctx context.Context, sid types.SessionID) (*model.UserData, error) {
			name, ok := sessionUsers[sid]
			if !ok {
				return nil, types.ErrUnauthorized
			}
			return &model.UserData{
				Email:         types.Email(name + "@example.com"),
				Name:          name,
				ProviderToken: types.ProviderToken("token-" + name),
			}, nil
		},
		UploadFromTreeFunc: func(ctx context.Context, sid types.SessionID, input *model.UploadInput) error {
			return nil
		},
		RunTestsFunc: func(ctx context.Context, sid types.SessionID, input *model.RunTestsInput) (types.TestID, error) {
			return "t1", nil
		},
		PollStatusFunc: func(ctx context.Context, sid types.SessionID, testID types.TestID) (*model.TestStatus, error) {
			return &model.TestStatus{ID: testID, State: model.TestRunCompleted, PercentComplete: 100}, nil
		},
		FetchResultsFunc: func(ctx context.Context, sid types.SessionID, testID types.TestID) (*model.TestResults, error) {
			return &model.TestResults{
				TestID:   testID,
				Findings: []*model.Finding{{ID: "f1", Severity: model.SeverityHigh}},
			}, nil
		},
	}

	f.github = &mock.GitHubMock{
		GetTreeFunc: func(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, sha types.TreeSHA) (*model.Tree, error) {
			return &model.Tree{
				SHA: sha,
				Entries: []*model.TreeEntry{
					{Path: "main.go", SHA: "blob1", Size: 10},
					{Path: "README.md", SHA: "blob2", Size: 20},
				},
			}, nil
		},
		GetBlobFunc: func(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, sha string) ([]byte, error) {
			return []byte("content of " + sha), nil
		},
		GetBranchTreeFunc: func(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, branch string) (types.TreeSHA, error) {
			return "tree1", nil
		},
		CreateStatusFunc: func(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, commit types.CommitSHA, status *model.CommitStatus) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.statuses = append(f.statuses, status)
			return nil
		},
	}

	opts := append([]usecase.Option{
		usecase.WithEnvironment("prod"),
		usecase.WithResultsURL(resultsURL),
		usecase.WithPollInterval(time.Millisecond),
	}, options...)

	f.uc = usecase.New(infra.New(
		infra.WithTestProvider(f.provider),
		infra.WithGitHub(f.github),
		infra.WithScanLedger(f.repo),
		infra.WithSubscriptionRegistry(f.repo),
	), opts...)

	return f
}

var sessionUsers = map[types.SessionID]string{
	"sid-alice": "alice",
	"sid-bob":   "bob",
	"sid-carol": "carol",
}

func (f *fixture) Statuses() []*model.CommitStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.CommitStatus(nil), f.statuses...)
}

func (f *fixture) subscribe(t *testing.T, email types.Email, sid types.SessionID, env types.Environment) {
	t.Helper()
	_, err := f.repo.Upsert(t.Context(), model.SubscriptionKey{
		Channel:     types.ChannelGitHub,
		Email:       email,
		Ref:         "main",
		Repository:  "acme/widgets",
		Environment: env,
	}, model.SubscriptionData{SessionID: sid})
	gt.NoError(t, err)
}

func newPushEvent(compare string) *model.WebhookEvent {
	return &model.WebhookEvent{
		Kind:         model.EventKindPush,
		Compare:      compare,
		Ref:          "refs/heads/main",
		Repo:         model.GitHubRepo{Owner: "acme", RepoName: "widgets"},
		HeadCommitID: "abc123",
		TreeID:       "tree1",
		Payload:      []byte(`{"ref":"refs/heads/main"}`),
	}
}

func TestNew(t *testing.T) {
	uc := usecase.New(infra.New())
	var _ interfaces.UseCase = uc
}
