package config

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/ghapp"
	"github.com/urfave/cli/v3"
)

// GitHubApp configures the GitHub API client and webhook validation. The
// App is optional; without it calls use the driving identity's token.
type GitHubApp struct {
	id         types.GitHubAppID
	secret     types.GitHubWebhookSecret `masq:"secret"`
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	baseURL    string
}

func (x *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (optional)",
			Category:    "GitHub App",
			Destination: (*int64)(&x.id),
			Sources:     cli.EnvVars("SCANHOOK_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("SCANHOOK_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret. Signatures are not validated when empty",
			Category:    "GitHub App",
			Destination: (*string)(&x.secret),
			Sources:     cli.EnvVars("SCANHOOK_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL for GitHub Enterprise Server",
			Category:    "GitHub App",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("SCANHOOK_GITHUB_API_URL"),
		},
	}
}

func (x GitHubApp) New() (*ghapp.Client, error) {
	var options []ghapp.Option
	if x.id != 0 || x.privateKey != "" {
		options = append(options, ghapp.WithApp(x.id, x.privateKey))
	}

	if x.baseURL != "" {
		raw := x.baseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API URL", goerr.V("url", x.baseURL))
		}
		options = append(options, ghapp.WithBaseURL(u))
	}

	return ghapp.New(options...)
}

func (x GitHubApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("ID", int64(x.id)),
		slog.Int("Secret.len", len(x.secret)),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.String("baseURL", x.baseURL),
	)
}

func (x GitHubApp) Secret() types.GitHubWebhookSecret {
	return x.secret
}
