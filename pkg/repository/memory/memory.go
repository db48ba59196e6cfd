package memory

import (
	"sync"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
)

// Repository keeps scans and subscriptions in process memory. It serves
// tests and single-instance deployments.
type Repository struct {
	mu            sync.RWMutex
	scans         map[string]*model.ScanRecord
	subscriptions map[model.SubscriptionKey]*model.Subscription
	order         []model.SubscriptionKey
}

var (
	_ interfaces.ScanLedger           = (*Repository)(nil)
	_ interfaces.SubscriptionRegistry = (*Repository)(nil)
)

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		scans:         make(map[string]*model.ScanRecord),
		subscriptions: make(map[model.SubscriptionKey]*model.Subscription),
	}
}
