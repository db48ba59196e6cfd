package infra

import (
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/infra/tokenstore"
	"github.com/secmon-lab/scanhook/pkg/repository/memory"
)

type Clients struct {
	testProvider  interfaces.TestProvider
	github        interfaces.GitHub
	bqClient      interfaces.BigQuery
	objectStorage interfaces.ObjectStorage
	scanLedger    interfaces.ScanLedger
	subscriptions interfaces.SubscriptionRegistry
	tokenStore    *tokenstore.Store
}

type Option func(*Clients)

// New builds the client set. Without repository options, scans and
// subscriptions are kept in a shared in-memory repository.
func New(options ...Option) *Clients {
	repo := memory.New()
	client := &Clients{
		scanLedger:    repo,
		subscriptions: repo,
		tokenStore:    tokenstore.New(tokenstore.DefaultSize, tokenstore.DefaultTTL),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) TestProvider() interfaces.TestProvider {
	return x.testProvider
}
func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) ObjectStorage() interfaces.ObjectStorage {
	return x.objectStorage
}
func (x *Clients) ScanLedger() interfaces.ScanLedger {
	return x.scanLedger
}
func (x *Clients) SubscriptionRegistry() interfaces.SubscriptionRegistry {
	return x.subscriptions
}
func (x *Clients) TokenStore() *tokenstore.Store {
	return x.tokenStore
}

func WithTestProvider(client interfaces.TestProvider) Option {
	return func(x *Clients) {
		x.testProvider = client
	}
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithObjectStorage(client interfaces.ObjectStorage) Option {
	return func(x *Clients) {
		x.objectStorage = client
	}
}

func WithScanLedger(ledger interfaces.ScanLedger) Option {
	return func(x *Clients) {
		x.scanLedger = ledger
	}
}

func WithSubscriptionRegistry(registry interfaces.SubscriptionRegistry) Option {
	return func(x *Clients) {
		x.subscriptions = registry
	}
}

func WithTokenStore(store *tokenstore.Store) Option {
	return func(x *Clients) {
		x.tokenStore = store
	}
}
