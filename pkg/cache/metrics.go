package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks cache hits by backend.
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetchres_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"}, // "sqlite", "redis"
	)

	// cacheMisses tracks cache misses, including lazy-expired reads.
	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetchres_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// cacheErrors tracks store operation errors by operation.
	cacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetchres_cache_errors_total",
			Help: "Total number of cache store operation errors",
		},
		[]string{"operation"}, // "get", "set", "sweep", "invalidate", "clear"
	)

	// cacheInvalidations counts records removed by substring invalidation.
	cacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetchres_cache_invalidations_total",
			Help: "Total number of cache records removed by key-substring invalidation",
		},
	)

	// cacheDegradations counts backend open failures that degraded the
	// store to a no-op.
	cacheDegradations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetchres_cache_degradations_total",
			Help: "Total number of times the cache degraded to no-op because the store was unavailable",
		},
	)
)
