// Package metrics documents the Prometheus metrics exported by the module.
// The metrics themselves are defined next to the code they instrument
// (pkg/client, pkg/cache, pkg/scheduler) to keep packages self-contained.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer; all metrics register
// themselves via promauto in their own packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - fetchres_requests_total{outcome} (Counter): Fetches by outcome (success, error, cache_hit)
//   - fetchres_request_duration_seconds (Histogram): Fetch duration, cache hits included
//
// Retry Metrics (pkg/client):
//   - fetchres_retries_total (Counter): Retry attempts
//   - fetchres_retry_backoff_seconds (Histogram): Backoff waits before retries
//   - fetchres_retry_exhausted_total (Counter): Calls that exhausted the retry budget
//
// Cache Metrics (pkg/cache):
//   - fetchres_cache_hits_total{backend} (Counter): Cache hits by backend
//   - fetchres_cache_misses_total (Counter): Cache misses, lazy-expired reads included
//   - fetchres_cache_errors_total{operation} (Counter): Store operation errors
//   - fetchres_cache_invalidations_total (Counter): Records removed by substring invalidation
//   - fetchres_cache_degradations_total (Counter): Degradations to the no-op backend
//
// Scheduler Metrics (pkg/scheduler):
//   - fetchres_scheduler_executions_total{policy} (Counter): Dispatches by policy
//   - fetchres_scheduler_coalesced_total (Counter): Callers coalesced onto in-flight calls
//   - fetchres_scheduler_throttle_waits_total (Counter): Callers that waited out a spacing window
//   - fetchres_scheduler_superseded_total (Counter): Debounce calls superseded before firing
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(fetchres_cache_hits_total[5m])) /
//   (sum(rate(fetchres_cache_hits_total[5m])) + sum(rate(fetchres_cache_misses_total[5m])))
//
//   # Retry Pressure
//   rate(fetchres_retries_total[5m])
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(fetchres_request_duration_seconds_bucket[5m]))
