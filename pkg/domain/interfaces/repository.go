package interfaces

import (
	"context"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// ScanLedger stores one ScanRecord per comparison identifier. It is the
// single source of truth for at-most-once test execution.
type ScanLedger interface {
	// UpsertRawEvent inserts the record if no record with the same Compare
	// exists. The check and insert are atomic; existed is true when another
	// writer got there first, and the stored record is left untouched.
	UpsertRawEvent(ctx context.Context, record *model.ScanRecord) (existed bool, err error)

	// AttachResults stores a run outcome. ok is false when no record exists.
	AttachResults(ctx context.Context, compare string, outcome *model.RunOutcome) (ok bool, err error)

	// FindLatest returns the newest record of (ref, repository), or nil.
	FindLatest(ctx context.Context, ref, repository string) (*model.ScanRecord, error)

	// FindByID returns the record or nil.
	FindByID(ctx context.Context, id types.ScanID) (*model.ScanRecord, error)
}

// SubscriptionRegistry stores durable subscriptions.
type SubscriptionRegistry interface {
	Upsert(ctx context.Context, key model.SubscriptionKey, data model.SubscriptionData) (*model.Subscription, error)
	Remove(ctx context.Context, key model.SubscriptionKey) (int, error)
	ListByPartition(ctx context.Context, partition model.Partition) ([]*model.Subscription, error)
	ListByOwner(ctx context.Context, channel types.Channel, email types.Email, env types.Environment) ([]*model.Subscription, error)
	AttachScanReference(ctx context.Context, partition model.Partition, scanID types.ScanID) (int, error)
}
