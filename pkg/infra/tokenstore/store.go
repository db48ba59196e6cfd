package tokenstore

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

const (
	DefaultSize = 1024
	DefaultTTL  = time.Hour
)

// Store parks verified identities between the webhook request and the
// asynchronous run it triggers. Entries are evicted on expiry or when the
// store is full, and a handle can be redeemed only once.
type Store struct {
	cache *expirable.LRU[types.TokenHandle, *model.VerifiedIdentity]
}

func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		cache: expirable.NewLRU[types.TokenHandle, *model.VerifiedIdentity](size, nil, ttl),
	}
}

// Put stores the identity and returns an opaque handle for it.
func (x *Store) Put(identity *model.VerifiedIdentity) types.TokenHandle {
	handle := types.NewTokenHandle()
	c := *identity
	x.cache.Add(handle, &c)
	return handle
}

// Take redeems the handle. It returns nil when the handle is unknown,
// expired or already redeemed.
func (x *Store) Take(handle types.TokenHandle) *model.VerifiedIdentity {
	identity, ok := x.cache.Peek(handle)
	if !ok {
		return nil
	}
	if !x.cache.Remove(handle) {
		return nil
	}
	return identity
}

func (x *Store) Len() int {
	return x.cache.Len()
}
