package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

// Partition groups subscribers that share one scan outcome. An empty
// Environment matches every environment of the (channel, ref, repository).
type Partition struct {
	Channel     types.Channel
	Ref         string
	Repository  string
	Environment types.Environment
}

func (x Partition) Normalize() Partition {
	x.Ref = NormalizeRef(x.Ref)
	return x
}

func (x Partition) Validate() error {
	if x.Channel == "" || x.Ref == "" || x.Repository == "" {
		return goerr.Wrap(types.ErrValidationFailed, "partition requires channel, ref and repository",
			goerr.V("partition", x),
		)
	}
	return nil
}

// Match reports whether a subscription belongs to the partition.
func (x Partition) Match(sub *Subscription) bool {
	if sub.Channel != x.Channel || sub.Ref != NormalizeRef(x.Ref) || sub.Repository != x.Repository {
		return false
	}
	return x.Environment == "" || sub.Environment == x.Environment
}

// SubscriptionKey is the unique composite key of a subscription.
type SubscriptionKey struct {
	Channel     types.Channel     `json:"channel"`
	Email       types.Email       `json:"email"`
	Ref         string            `json:"ref"`
	Repository  string            `json:"repository"`
	Environment types.Environment `json:"environment"`
}

func (x SubscriptionKey) Normalize() SubscriptionKey {
	x.Ref = NormalizeRef(x.Ref)
	return x
}

func (x SubscriptionKey) Validate() error {
	if x.Channel == "" || x.Email == "" || x.Ref == "" || x.Repository == "" || x.Environment == "" {
		return goerr.Wrap(types.ErrValidationFailed, "subscription key is incomplete",
			goerr.V("key", x),
		)
	}
	if _, err := ParseGitHubRepo(x.Repository); err != nil {
		return err
	}
	return nil
}

func (x SubscriptionKey) Partition() Partition {
	return Partition{
		Channel:     x.Channel,
		Ref:         x.Ref,
		Repository:  x.Repository,
		Environment: x.Environment,
	}
}

// SubscriptionData holds the mutable fields of a subscription.
type SubscriptionData struct {
	SessionID    types.SessionID
	LatestScanID types.ScanID
}

type Subscription struct {
	Channel      types.Channel     `json:"channel" firestore:"Channel"`
	Email        types.Email       `json:"email" firestore:"Email"`
	Ref          string            `json:"ref" firestore:"Ref"`
	Repository   string            `json:"repository" firestore:"Repository"`
	Environment  types.Environment `json:"environment" firestore:"Environment"`
	SessionID    types.SessionID   `json:"-" firestore:"SessionID" masq:"secret"`
	LatestScanID types.ScanID      `json:"latest_scan_id,omitempty" firestore:"LatestScanID"`
	CreatedAt    time.Time         `json:"created_at" firestore:"CreatedAt"`
	UpdatedAt    time.Time         `json:"updated_at" firestore:"UpdatedAt"`
}

func (x *Subscription) Key() SubscriptionKey {
	return SubscriptionKey{
		Channel:     x.Channel,
		Email:       x.Email,
		Ref:         x.Ref,
		Repository:  x.Repository,
		Environment: x.Environment,
	}
}

// NewSubscription builds a subscription record from its key and data.
func NewSubscription(key SubscriptionKey, data SubscriptionData, now time.Time) *Subscription {
	key = key.Normalize()
	return &Subscription{
		Channel:      key.Channel,
		Email:        key.Email,
		Ref:          key.Ref,
		Repository:   key.Repository,
		Environment:  key.Environment,
		SessionID:    data.SessionID,
		LatestScanID: data.LatestScanID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SubscribeInput is a subscription request authenticated by session ID.
type SubscribeInput struct {
	SessionID   types.SessionID
	Channel     types.Channel
	Environment types.Environment
	Ref         string
	Repository  string
}

func (x *SubscribeInput) Validate() error {
	if x.SessionID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "session ID is empty")
	}
	if x.Channel == "" || x.Environment == "" || x.Ref == "" {
		return goerr.Wrap(types.ErrValidationFailed, "channel, environment and ref are required")
	}
	if _, err := ParseGitHubRepo(x.Repository); err != nil {
		return err
	}
	return nil
}

type SubscribeOutput struct {
	Subscription *Subscription `json:"subscription"`
	LatestScan   *ScanRecord   `json:"latest_scan,omitempty"`
	ScanRequired bool          `json:"scan_required"`
	TreeID       types.TreeSHA `json:"tree_id,omitempty"`
}
