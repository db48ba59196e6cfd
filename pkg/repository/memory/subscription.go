package memory

import (
	"context"
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

func (r *Repository) Upsert(ctx context.Context, key model.SubscriptionKey, data model.SubscriptionData) (*model.Subscription, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	key = key.Normalize()
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	sub := model.NewSubscription(key, data, now)
	if current, exists := r.subscriptions[key]; exists {
		sub.CreatedAt = current.CreatedAt
	} else {
		r.order = append(r.order, key)
	}
	r.subscriptions[key] = sub

	c := *sub
	return &c, nil
}

func (r *Repository) Remove(ctx context.Context, key model.SubscriptionKey) (int, error) {
	key = key.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscriptions[key]; !exists {
		return 0, nil
	}
	delete(r.subscriptions, key)

	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (r *Repository) ListByPartition(ctx context.Context, partition model.Partition) ([]*model.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var subs []*model.Subscription
	for _, key := range r.order {
		sub := r.subscriptions[key]
		if partition.Match(sub) {
			c := *sub
			subs = append(subs, &c)
		}
	}
	return subs, nil
}

func (r *Repository) ListByOwner(ctx context.Context, channel types.Channel, email types.Email, env types.Environment) ([]*model.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var subs []*model.Subscription
	for _, key := range r.order {
		sub := r.subscriptions[key]
		if sub.Channel != channel || sub.Email != email {
			continue
		}
		if env != "" && sub.Environment != env {
			continue
		}
		c := *sub
		subs = append(subs, &c)
	}
	return subs, nil
}

func (r *Repository) AttachScanReference(ctx context.Context, partition model.Partition, scanID types.ScanID) (int, error) {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for _, sub := range r.subscriptions {
		if partition.Match(sub) {
			sub.LatestScanID = scanID
			sub.UpdatedAt = now
			n++
		}
	}
	return n, nil
}
