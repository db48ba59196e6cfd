package types

import "log/slog"

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitHubWebhookSecret string
	CommitSHA           string
	TreeSHA             string
)

func (x GitHubWebhookSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubWebhookSecret) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}
