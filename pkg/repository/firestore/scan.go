package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Scan documents are keyed by the scan ID, which is derived from the
// comparison identifier. Create fails with AlreadyExists on redelivery.
func (r *Repository) UpsertRawEvent(ctx context.Context, record *model.ScanRecord) (bool, error) {
	docRef := r.client.Collection(collectionScan).Doc(string(types.NewScanID(record.Compare)))

	if _, err := docRef.Create(ctx, record); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return true, nil
		}
		return false, goerr.Wrap(err, "failed to create scan record",
			goerr.V("compare", record.Compare),
		)
	}

	return false, nil
}

func (r *Repository) AttachResults(ctx context.Context, compare string, outcome *model.RunOutcome) (bool, error) {
	docRef := r.client.Collection(collectionScan).Doc(string(types.NewScanID(compare)))

	updates := []firestore.Update{
		{Path: "TestID", Value: outcome.TestID},
		{Path: "Results", Value: outcome.Results},
		{Path: "Matrix", Value: outcome.Matrix},
		{Path: "Verdict", Value: outcome.Verdict},
		{Path: "Error", Value: outcome.Error},
		{Path: "UpdatedAt", Value: outcome.UpdatedAt},
	}
	if outcome.TreeID != "" {
		updates = append(updates, firestore.Update{Path: "TreeID", Value: outcome.TreeID})
	}

	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to attach results",
			goerr.V("compare", compare),
		)
	}

	return true, nil
}

func (r *Repository) FindLatest(ctx context.Context, ref, repository string) (*model.ScanRecord, error) {
	query := r.client.Collection(collectionScan).
		Where("Ref", "==", model.NormalizeRef(ref)).
		Where("Repository", "==", repository).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(1)

	iter := query.Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query latest scan",
			goerr.V("ref", ref),
			goerr.V("repository", repository),
		)
	}

	var rec model.ScanRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode scan record")
	}
	return &rec, nil
}

func (r *Repository) FindByID(ctx context.Context, id types.ScanID) (*model.ScanRecord, error) {
	snap, err := r.client.Collection(collectionScan).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get scan record",
			goerr.V("id", id),
		)
	}

	var rec model.ScanRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode scan record",
			goerr.V("id", id),
		)
	}
	return &rec, nil
}
