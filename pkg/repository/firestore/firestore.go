package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
)

const (
	collectionScan         = "scan"
	collectionSubscription = "subscription"
	batchSize              = 500
)

// Repository implements ScanLedger and SubscriptionRegistry on Firestore.
type Repository struct {
	client *firestore.Client
}

var (
	_ interfaces.ScanLedger           = (*Repository)(nil)
	_ interfaces.SubscriptionRegistry = (*Repository)(nil)
)

// New creates a new Firestore-based repository
func New(ctx context.Context, projectID, databaseID string) (*Repository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Repository{
		client: client,
	}, nil
}

func (r *Repository) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Firestore client")
	}
	return nil
}
