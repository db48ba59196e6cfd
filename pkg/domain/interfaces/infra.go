package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . TestProvider GitHub BigQuery ObjectStorage

import (
	"context"
	"io"

	"cloud.google.com/go/bigquery"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// TestProvider is the external identity and static-analysis service.
type TestProvider interface {
	GetUserData(ctx context.Context, sid types.SessionID) (*model.UserData, error)
	UploadFromTree(ctx context.Context, sid types.SessionID, input *model.UploadInput) error
	RunTests(ctx context.Context, sid types.SessionID, input *model.RunTestsInput) (types.TestID, error)
	PollStatus(ctx context.Context, sid types.SessionID, testID types.TestID) (*model.TestStatus, error)
	FetchResults(ctx context.Context, sid types.SessionID, testID types.TestID) (*model.TestResults, error)
}

// GitHubAuth selects the credential of a GitHub API call. The installation
// ID is used when the GitHub App is configured, otherwise the token.
type GitHubAuth struct {
	Token     types.ProviderToken
	InstallID types.GitHubAppInstallID
}

type GitHub interface {
	GetTree(ctx context.Context, auth GitHubAuth, repo model.GitHubRepo, sha types.TreeSHA) (*model.Tree, error)
	GetBlob(ctx context.Context, auth GitHubAuth, repo model.GitHubRepo, sha string) ([]byte, error)
	GetBranchTree(ctx context.Context, auth GitHubAuth, repo model.GitHubRepo, branch string) (types.TreeSHA, error)
	CreateStatus(ctx context.Context, auth GitHubAuth, repo model.GitHubRepo, commit types.CommitSHA, status *model.CommitStatus) error
}

type BigQueryInsertOption func(*BigQueryInsertConfig)

type BigQueryInsertConfig struct {
	InsertID string
}

func WithInsertID(id string) BigQueryInsertOption {
	return func(c *BigQueryInsertConfig) {
		c.InsertID = id
	}
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any, opts ...BigQueryInsertOption) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// ObjectStorage archives raw run artifacts.
type ObjectStorage interface {
	Put(ctx context.Context, path string, contentType string, r io.Reader) error
}
