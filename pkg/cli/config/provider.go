package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/bugcatcher"
	"github.com/urfave/cli/v3"
)

// TestProvider configures the identity and static analysis API.
type TestProvider struct {
	url string
}

func (x *TestProvider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider-url",
			Usage:       "Base URL of the test provider API",
			Category:    "Test Provider",
			Destination: &x.url,
			Sources:     cli.EnvVars("SCANHOOK_PROVIDER_URL"),
		},
	}
}

func (x *TestProvider) LogValue() slog.Value {
	return slog.GroupValue(slog.String("url", x.url))
}

func (x *TestProvider) New() (*bugcatcher.Client, error) {
	if x.url == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "provider URL is required")
	}
	return bugcatcher.New(x.url)
}
