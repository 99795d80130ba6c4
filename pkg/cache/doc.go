// Package cache provides the persistent TTL cache consulted before any
// request is scheduled.
//
// The CacheStore sits on a pluggable Store backend:
//
//   - SQLiteStore: persistent default (modernc.org/sqlite), opened lazily on
//     first use with schema creation on first open.
//   - RedisStore: for deployments that already run Redis.
//   - NoopStore: automatic degradation when the backend is unavailable —
//     every read misses, every write silently succeeds.
//
// Expiration is lazy: the expiry timestamp is fixed at write time as
// now + TTL, and a read treats any record past its expiry as absent whether
// or not it has been physically removed. A full sweep of expired records
// runs once, when the backend is opened; there is no recurring background
// sweep.
//
// # Basic Usage
//
//	store := cache.New(func() (cache.Store, error) {
//		return cache.NewSQLiteStore("fetch-cache.db")
//	})
//	defer store.Close()
//
//	store.Set(ctx, "https://api.example.com/users", users, 15*time.Minute)
//
//	if v, ok := store.Get(ctx, "https://api.example.com/users"); ok {
//		// cache hit
//	}
//
//	// Coarse-grained busting: drop every entry for a resource family.
//	store.InvalidateByKeySubstring(ctx, "/users")
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - fetchres_cache_hits_total{backend} - Cache hits
//   - fetchres_cache_misses_total - Cache misses
//   - fetchres_cache_errors_total{operation} - Store operation errors
//   - fetchres_cache_invalidations_total - Records removed by substring invalidation
//   - fetchres_cache_degradations_total - Degradations to no-op
package cache
