package cache

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested key is not present in the store.
	ErrNotFound = errors.New("cache entry not found")

	// ErrStoreUnavailable indicates the backing store could not be opened.
	// It never escapes the CacheStore: unavailability degrades to a no-op.
	ErrStoreUnavailable = errors.New("cache store unavailable")
)

// Record is a persisted cache entry. Value holds the JSON-encoded result;
// ExpiresAt is a unix-nano timestamp set at write time as now + TTL.
type Record struct {
	Key       string `json:"key"`
	Value     []byte `json:"value"`
	ExpiresAt int64  `json:"expires_at"`
}

// Store is the persistent backend primitive behind CacheStore. Every method
// maps to one atomic transaction against the backend; there is no
// multi-operation atomicity.
type Store interface {
	// Get returns the record for key, or ErrNotFound. Expiry is NOT
	// checked here; the CacheStore enforces it lazily on read.
	Get(ctx context.Context, key string) (*Record, error)

	// Put inserts or replaces the record for rec.Key.
	Put(ctx context.Context, rec *Record) error

	// Delete removes the record for key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// DeleteExpired removes every record with ExpiresAt <= now and
	// returns the number removed.
	DeleteExpired(ctx context.Context, now int64) (int, error)

	// DeleteContaining removes every record whose key contains fragment
	// as a substring and returns the number removed.
	DeleteContaining(ctx context.Context, fragment string) (int, error)

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Name identifies the backend ("sqlite", "redis", "noop") for
	// logging and metric labels.
	Name() string

	// Close releases backend resources.
	Close() error
}
