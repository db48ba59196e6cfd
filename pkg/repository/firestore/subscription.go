package firestore

import (
	"context"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToSubscriptionDocID converts a subscription key to a Firestore-safe
// document ID. Each part is path-escaped so that "/" in refs and
// repository names never reaches the ID, and parts are joined with ":".
func ToSubscriptionDocID(key model.SubscriptionKey) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	key = key.Normalize()

	parts := []string{
		string(key.Channel),
		string(key.Environment),
		key.Repository,
		key.Ref,
		string(key.Email),
	}
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}

	return strings.Join(parts, ":"), nil
}

func (r *Repository) Upsert(ctx context.Context, key model.SubscriptionKey, data model.SubscriptionData) (*model.Subscription, error) {
	docID, err := ToSubscriptionDocID(key)
	if err != nil {
		return nil, err
	}
	docRef := r.client.Collection(collectionSubscription).Doc(docID)
	sub := model.NewSubscription(key, data, time.Now().UTC())

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			var current model.Subscription
			if err := snap.DataTo(&current); err != nil {
				return err
			}
			sub.CreatedAt = current.CreatedAt
		}
		return tx.Set(docRef, sub)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert subscription",
			goerr.V("key", key),
		)
	}

	return sub, nil
}

func (r *Repository) Remove(ctx context.Context, key model.SubscriptionKey) (int, error) {
	docID, err := ToSubscriptionDocID(key)
	if err != nil {
		return 0, err
	}
	docRef := r.client.Collection(collectionSubscription).Doc(docID)

	if _, err := docRef.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, goerr.Wrap(err, "failed to remove subscription",
			goerr.V("key", key),
		)
	}
	return 1, nil
}

func (r *Repository) partitionQuery(partition model.Partition) firestore.Query {
	partition = partition.Normalize()
	query := r.client.Collection(collectionSubscription).
		Where("Channel", "==", partition.Channel).
		Where("Ref", "==", partition.Ref).
		Where("Repository", "==", partition.Repository)
	if partition.Environment != "" {
		query = query.Where("Environment", "==", partition.Environment)
	}
	return query.OrderBy("CreatedAt", firestore.Asc)
}

func (r *Repository) ListByPartition(ctx context.Context, partition model.Partition) ([]*model.Subscription, error) {
	subs, _, err := r.collect(r.partitionQuery(partition).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions by partition",
			goerr.V("partition", partition),
		)
	}
	return subs, nil
}

func (r *Repository) ListByOwner(ctx context.Context, channel types.Channel, email types.Email, env types.Environment) ([]*model.Subscription, error) {
	query := r.client.Collection(collectionSubscription).
		Where("Channel", "==", channel).
		Where("Email", "==", email)
	if env != "" {
		query = query.Where("Environment", "==", env)
	}

	subs, _, err := r.collect(query.OrderBy("CreatedAt", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions by owner",
			goerr.V("channel", channel),
			goerr.V("environment", env),
		)
	}
	return subs, nil
}

func (r *Repository) AttachScanReference(ctx context.Context, partition model.Partition, scanID types.ScanID) (int, error) {
	_, refs, err := r.collect(r.partitionQuery(partition).Documents(ctx))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list subscriptions for scan reference",
			goerr.V("partition", partition),
		)
	}

	// Process in batches of 500 (Firestore limit)
	for i := 0; i < len(refs); i += batchSize {
		end := i + batchSize
		if end > len(refs) {
			end = len(refs)
		}

		batch := r.client.Batch()
		for _, docRef := range refs[i:end] {
			batch.Update(docRef, []firestore.Update{
				{Path: "LatestScanID", Value: scanID},
				{Path: "UpdatedAt", Value: time.Now().UTC()},
			})
		}

		if _, err := batch.Commit(ctx); err != nil {
			return i, goerr.Wrap(err, "failed to attach scan reference",
				goerr.V("partition", partition),
				goerr.V("scanID", scanID),
				goerr.V("batchStart", i),
				goerr.V("batchEnd", end),
			)
		}
	}

	return len(refs), nil
}

func (r *Repository) collect(iter *firestore.DocumentIterator) ([]*model.Subscription, []*firestore.DocumentRef, error) {
	defer iter.Stop()

	var subs []*model.Subscription
	var refs []*firestore.DocumentRef
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		var sub model.Subscription
		if err := snap.DataTo(&sub); err != nil {
			return nil, nil, goerr.Wrap(err, "failed to decode subscription")
		}

		subs = append(subs, &sub)
		refs = append(refs, snap.Ref)
	}

	return subs, refs, nil
}
