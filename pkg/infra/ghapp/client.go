package ghapp

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

// Client calls the GitHub REST API either as a GitHub App installation or
// with a user's token, depending on the GitHubAuth of each call.
type Client struct {
	appID   types.GitHubAppID
	pem     types.GitHubAppPrivateKey
	baseURL *url.URL
	base    http.RoundTripper
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*Client)

// WithApp enables installation authentication.
func WithApp(appID types.GitHubAppID, pem types.GitHubAppPrivateKey) Option {
	return func(x *Client) {
		x.appID = appID
		x.pem = pem
	}
}

// WithBaseURL points the client at another API endpoint, such as GitHub
// Enterprise Server. The URL must end with a slash.
func WithBaseURL(u *url.URL) Option {
	return func(x *Client) {
		x.baseURL = u
	}
}

func WithTransport(tr http.RoundTripper) Option {
	return func(x *Client) {
		x.base = tr
	}
}

func New(options ...Option) (*Client, error) {
	client := &Client{
		base: otelhttp.NewTransport(http.DefaultTransport),
	}
	for _, opt := range options {
		opt(client)
	}

	if client.appID != 0 && client.pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}
	if client.appID == 0 && client.pem != "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}

	return client, nil
}

// AppEnabled reports whether installation authentication is configured.
func (x *Client) AppEnabled() bool {
	return x.appID != 0
}

func (x *Client) buildGithubClient(auth interfaces.GitHubAuth) (*github.Client, error) {
	httpClient, err := x.buildGithubHTTPClient(auth)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(httpClient)
	if x.baseURL != nil {
		client.BaseURL = x.baseURL
	}
	return client, nil
}

func (x *Client) buildGithubHTTPClient(auth interfaces.GitHubAuth) (*http.Client, error) {
	if x.AppEnabled() && auth.InstallID != 0 {
		itr, err := ghinstallation.New(x.base, int64(x.appID), int64(auth.InstallID), []byte(x.pem))
		if err != nil {
			return nil, goerr.Wrap(err, "Failed to create github client",
				goerr.V("installID", auth.InstallID),
			)
		}
		if x.baseURL != nil {
			itr.BaseURL = x.baseURL.String()
		}
		return &http.Client{Transport: itr}, nil
	}

	if auth.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(auth.Token)})
		return &http.Client{Transport: &oauth2.Transport{Source: src, Base: x.base}}, nil
	}

	return nil, goerr.Wrap(types.ErrUnauthorized, "no GitHub credential available")
}

func (x *Client) GetTree(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, sha types.TreeSHA) (*model.Tree, error) {
	client, err := x.buildGithubClient(auth)
	if err != nil {
		return nil, err
	}

	tree, _, err := client.Git.GetTree(ctx, repo.Owner, repo.RepoName, string(sha), true)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get tree",
			goerr.V("repo", repo.FullName()),
			goerr.V("sha", sha),
		)
	}

	result := &model.Tree{
		SHA:       types.TreeSHA(tree.GetSHA()),
		Truncated: tree.GetTruncated(),
	}
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		result.Entries = append(result.Entries, &model.TreeEntry{
			Path: entry.GetPath(),
			SHA:  entry.GetSHA(),
			Size: entry.GetSize(),
		})
	}

	logging.From(ctx).Debug("Resolved tree",
		slog.String("repo", repo.FullName()),
		slog.Any("sha", sha),
		slog.Int("entries", len(result.Entries)),
		slog.Bool("truncated", result.Truncated),
	)

	return result, nil
}

func (x *Client) GetBlob(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, sha string) ([]byte, error) {
	client, err := x.buildGithubClient(auth)
	if err != nil {
		return nil, err
	}

	raw, _, err := client.Git.GetBlobRaw(ctx, repo.Owner, repo.RepoName, sha)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get blob",
			goerr.V("repo", repo.FullName()),
			goerr.V("sha", sha),
		)
	}
	return raw, nil
}

func (x *Client) GetBranchTree(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, branch string) (types.TreeSHA, error) {
	client, err := x.buildGithubClient(auth)
	if err != nil {
		return "", err
	}

	ref, _, err := client.Git.GetRef(ctx, repo.Owner, repo.RepoName, "heads/"+model.NormalizeRef(branch))
	if err != nil {
		return "", goerr.Wrap(err, "failed to get branch ref",
			goerr.V("repo", repo.FullName()),
			goerr.V("branch", branch),
		)
	}

	commit, _, err := client.Git.GetCommit(ctx, repo.Owner, repo.RepoName, ref.GetObject().GetSHA())
	if err != nil {
		return "", goerr.Wrap(err, "failed to get branch head commit",
			goerr.V("repo", repo.FullName()),
			goerr.V("branch", branch),
		)
	}

	return types.TreeSHA(commit.GetTree().GetSHA()), nil
}

func (x *Client) CreateStatus(ctx context.Context, auth interfaces.GitHubAuth, repo model.GitHubRepo, commit types.CommitSHA, status *model.CommitStatus) error {
	client, err := x.buildGithubClient(auth)
	if err != nil {
		return err
	}

	input := &github.RepoStatus{
		State:       github.String(status.State),
		Context:     github.String(status.Context),
		Description: github.String(status.Description),
	}
	if status.TargetURL != "" {
		input.TargetURL = github.String(status.TargetURL)
	}

	if _, _, err := client.Repositories.CreateStatus(ctx, repo.Owner, repo.RepoName, string(commit), input); err != nil {
		return goerr.Wrap(err, "failed to create commit status",
			goerr.V("repo", repo.FullName()),
			goerr.V("commit", commit),
			goerr.V("state", status.State),
		)
	}

	return nil
}
