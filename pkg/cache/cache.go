package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/WillardWam/Fetch-Resilient/pkg/logging"
)

// Opener produces the persistent Store backend on first use. Returning an
// error marks the store unavailable and degrades the CacheStore to a no-op.
type Opener func() (Store, error)

// CacheStore is the TTL cache consulted by the client before any request is
// scheduled. The backend is opened lazily on first use; unavailability is
// absorbed: reads miss, writes succeed silently, no error reaches callers.
type CacheStore struct {
	mu     sync.Mutex
	opener Opener
	store  Store
	logger zerolog.Logger
}

// New creates a CacheStore whose backend is opened lazily via opener.
func New(opener Opener) *CacheStore {
	return &CacheStore{
		opener: opener,
		logger: logging.NewLogger("cache"),
	}
}

// NewWithStore creates a CacheStore on an already-opened backend. The
// initialisation sweep of expired records runs immediately.
func NewWithStore(store Store) *CacheStore {
	c := &CacheStore{
		store:  store,
		logger: logging.NewLogger("cache"),
	}
	c.sweep(context.Background())
	return c
}

// backend returns the Store, opening it on first use. An opener failure is
// logged once and replaced by the no-op backend for the life of the store.
func (c *CacheStore) backend(ctx context.Context) Store {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		return c.store
	}

	store, err := c.opener()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Cache store unavailable, degrading to no-op")
		cacheDegradations.Inc()
		c.store = NewNoopStore()
		return c.store
	}

	c.store = store
	c.logger.Debug().Str("backend", store.Name()).Msg("Cache store opened")

	// One-time sweep of entries that expired while the process was down.
	// There is no recurring background sweep.
	c.sweepLocked(ctx)

	return c.store
}

func (c *CacheStore) sweep(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked(ctx)
}

func (c *CacheStore) sweepLocked(ctx context.Context) {
	n, err := c.store.DeleteExpired(ctx, time.Now().UnixNano())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Initial expired-entry sweep failed")
		cacheErrors.WithLabelValues("sweep").Inc()
		return
	}
	if n > 0 {
		c.logger.Debug().Int("removed", n).Msg("Swept expired cache entries")
	}
}

// Get returns the cached value for key. It reports absent both when no
// record exists and when the stored record's expiry has passed, whether or
// not the record has been physically removed.
func (c *CacheStore) Get(ctx context.Context, key string) (any, bool) {
	store := c.backend(ctx)

	rec, err := store.Get(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			c.logger.Warn().Err(err).Str("key", key).Msg("Cache get error")
			cacheErrors.WithLabelValues("get").Inc()
		}
		cacheMisses.Inc()
		return nil, false
	}

	if rec.ExpiresAt <= time.Now().UnixNano() {
		// Lazy expiration: the read misses; removal is best effort.
		_ = store.Delete(ctx, key)
		cacheMisses.Inc()
		return nil, false
	}

	var value any
	if err := json.Unmarshal(rec.Value, &value); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Corrupt cache record, treating as miss")
		cacheErrors.WithLabelValues("get").Inc()
		cacheMisses.Inc()
		return nil, false
	}

	cacheHits.WithLabelValues(store.Name()).Inc()
	return value, true
}

// Set stores value under key with the given TTL. The expiry is fixed at
// write time as now + ttl. Store failures are absorbed.
func (c *CacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	store := c.backend(ctx)

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache value not serialisable, skipping")
		cacheErrors.WithLabelValues("set").Inc()
		return
	}

	rec := &Record{
		Key:       key,
		Value:     data,
		ExpiresAt: time.Now().Add(ttl).UnixNano(),
	}

	if err := store.Put(ctx, rec); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache set error")
		cacheErrors.WithLabelValues("set").Inc()
		return
	}

	c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cached value")
}

// DeleteExpired removes every record whose expiry has passed. It runs
// automatically when the backend is opened; call it explicitly for
// long-lived processes that want an extra sweep.
func (c *CacheStore) DeleteExpired(ctx context.Context) {
	store := c.backend(ctx)
	if _, err := store.DeleteExpired(ctx, time.Now().UnixNano()); err != nil {
		c.logger.Warn().Err(err).Msg("Delete expired error")
		cacheErrors.WithLabelValues("sweep").Inc()
	}
}

// InvalidateByKeySubstring removes every record whose key contains fragment.
func (c *CacheStore) InvalidateByKeySubstring(ctx context.Context, fragment string) {
	store := c.backend(ctx)
	n, err := store.DeleteContaining(ctx, fragment)
	if err != nil {
		c.logger.Warn().Err(err).Str("fragment", fragment).Msg("Cache invalidation error")
		cacheErrors.WithLabelValues("invalidate").Inc()
		return
	}
	cacheInvalidations.Add(float64(n))
	c.logger.Debug().Str("fragment", fragment).Int("removed", n).Msg("Invalidated cache entries")
}

// ClearAll removes every record.
func (c *CacheStore) ClearAll(ctx context.Context) {
	store := c.backend(ctx)
	if err := store.Clear(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Cache clear error")
		cacheErrors.WithLabelValues("clear").Inc()
	}
}

// Close closes the backend if it was ever opened.
func (c *CacheStore) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
