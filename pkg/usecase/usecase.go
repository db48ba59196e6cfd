package usecase

import (
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra"
)

const (
	DefaultStatusContext     = "scanhook / Static Analysis"
	DefaultPollInterval      = 10 * time.Second
	DefaultPollTimeout       = 30 * time.Minute
	DefaultUploadConcurrency = 8
	DefaultMaxFileSize       = 1 << 20
	DefaultMaxUploadSize     = 256 << 20
)

type UseCase struct {
	clients *infra.Clients

	policy            *model.SeverityPolicy
	environment       types.Environment
	statusContext     string
	resultsURL        string
	pollInterval      time.Duration
	pollTimeout       time.Duration
	uploadConcurrency int
	maxFileSize       int
	maxUploadSize     int64
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

func WithSeverityPolicy(policy *model.SeverityPolicy) Option {
	return func(x *UseCase) {
		x.policy = policy
	}
}

// WithEnvironment sets the environment this instance serves. Webhook
// fan-out is restricted to subscriptions of the environment. An empty
// environment fans out to every environment of a (ref, repository).
func WithEnvironment(env types.Environment) Option {
	return func(x *UseCase) {
		x.environment = env
	}
}

func WithStatusContext(ctx string) Option {
	return func(x *UseCase) {
		x.statusContext = ctx
	}
}

// WithResultsURL sets the prefix of status target URLs. The test ID is
// appended to it.
func WithResultsURL(url string) Option {
	return func(x *UseCase) {
		x.resultsURL = url
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(x *UseCase) {
		x.pollInterval = d
	}
}

func WithPollTimeout(d time.Duration) Option {
	return func(x *UseCase) {
		x.pollTimeout = d
	}
}

func WithUploadConcurrency(n int) Option {
	return func(x *UseCase) {
		x.uploadConcurrency = n
	}
}

func WithMaxFileSize(n int) Option {
	return func(x *UseCase) {
		x.maxFileSize = n
	}
}

// WithMaxUploadSize caps the total bytes uploaded for one tree. A larger
// tree fails the uploading stage. Zero disables the cap.
func WithMaxUploadSize(n int64) Option {
	return func(x *UseCase) {
		x.maxUploadSize = n
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:           clients,
		policy:            model.DefaultSeverityPolicy(),
		statusContext:     DefaultStatusContext,
		pollInterval:      DefaultPollInterval,
		pollTimeout:       DefaultPollTimeout,
		uploadConcurrency: DefaultUploadConcurrency,
		maxFileSize:       DefaultMaxFileSize,
		maxUploadSize:     DefaultMaxUploadSize,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}
