package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/cli/config"
)

func TestSentryFlags(t *testing.T) {
	var sentryConfig config.Sentry
	flagNames := make(map[string]bool)
	for _, flag := range sentryConfig.Flags() {
		flagNames[flag.Names()[0]] = true
	}

	gt.V(t, len(flagNames)).Equal(4)
	gt.True(t, flagNames["sentry-dsn"])
	gt.True(t, flagNames["sentry-env"])
	gt.True(t, flagNames["sentry-release"])
	gt.True(t, flagNames["sentry-sample-rate"])
}

func TestSentryConfigureWithoutDSN(t *testing.T) {
	var sentryConfig config.Sentry
	gt.NoError(t, sentryConfig.Configure(t.Context()))
}
