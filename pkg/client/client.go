// Package client provides the resilient fetch client: retry with backoff,
// call shaping (throttle/debounce/coalescing) and a persistent TTL cache
// around a single outbound request primitive.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/WillardWam/Fetch-Resilient/pkg/cache"
	"github.com/WillardWam/Fetch-Resilient/pkg/logging"
	"github.com/WillardWam/Fetch-Resilient/pkg/scheduler"
)

// DefaultCachePath is the SQLite database used when no cache store is
// configured explicitly.
const DefaultCachePath = "fetch-resilient.db"

// Prometheus metrics for fetch operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fetchres_requests_total",
		Help: "Total fetches by outcome",
	}, []string{"outcome"}) // "success", "error", "cache_hit"

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fetchres_request_duration_seconds",
		Help:    "Fetch duration in seconds, cache hits included",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
	})
)

// Client is the orchestrator: it merges configuration layers, consults the
// cache, routes through the scheduler into the retry executor, decodes the
// response, runs hooks and writes the result back to the cache. It is safe
// for concurrent use.
type Client struct {
	transport Transport
	executor  *Executor
	scheduler *scheduler.Scheduler
	cache     *cache.CacheStore
	config    Config
	logger    zerolog.Logger
}

// Option configures the Client at construction time.
type Option func(*Client)

// WithTransport replaces the default net/http transport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithCacheStore replaces the default SQLite-backed cache store.
func WithCacheStore(store *cache.CacheStore) Option {
	return func(c *Client) { c.cache = store }
}

// WithDefaults sets instance-level configuration defaults. They override
// the process-wide defaults and are overridden per call by options passed
// to Fetch.
func WithDefaults(opts ...CallOption) Option {
	return func(c *Client) {
		for _, opt := range opts {
			opt(&c.config)
		}
	}
}

// New constructs a Client. Without options it uses an HTTP transport with a
// 30s timeout and a lazily-opened SQLite cache at DefaultCachePath; if that
// database cannot be opened the cache degrades to a transparent no-op.
func New(opts ...Option) *Client {
	c := &Client{
		config: Defaults(),
		logger: logging.NewLogger("client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = NewHTTPTransport(30 * time.Second)
	}
	if c.cache == nil {
		c.cache = cache.New(func() (cache.Store, error) {
			return cache.NewSQLiteStore(DefaultCachePath)
		})
	}

	c.executor = NewExecutor(c.transport)
	c.scheduler = scheduler.New()

	return c
}

// Fetch issues one logical request and returns the decoded result.
//
// Per-call options override the instance defaults for this call only. With
// caching enabled a fresh cached value short-circuits everything: no
// scheduling, no transport call, no hooks. Otherwise the call is shaped by
// the scheduler, executed with retries, decoded per ResponseType, passed
// through OnSuccess and, with caching enabled, written back under the same
// key with the configured TTL.
func (c *Client) Fetch(ctx context.Context, address string, reqOpts RequestOptions, opts ...CallOption) (any, error) {
	start := time.Now()
	defer func() {
		requestDuration.Observe(time.Since(start).Seconds())
	}()

	cfg := c.config
	for _, opt := range opts {
		opt(&cfg)
	}

	cacheKey := cfg.CacheKey
	if cacheKey == "" {
		cacheKey = address
	}

	if cfg.WithCache {
		if value, ok := c.cache.Get(ctx, cacheKey); ok {
			requestsTotal.WithLabelValues("cache_hit").Inc()
			c.logger.Debug().Str("key", cacheKey).Msg("Cache hit, skipping request")
			return value, nil
		}
	}

	callKey := scheduler.DeriveKey(reqOpts.method(), address, reqOpts.Headers, reqOpts.Body)

	raw, err := c.scheduler.Schedule(ctx, callKey, scheduler.Options{
		ThrottleTime: cfg.ThrottleTime,
		DebounceTime: cfg.DebounceTime,
	}, func(ctx context.Context) (any, error) {
		return c.executor.Execute(ctx, address, reqOpts, cfg)
	})
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	resp := raw.(*Response)

	value, err := decode(resp, cfg.ResponseType)
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		c.logger.Error().Err(err).Str("address", address).Msg("Response decode failed")
		return nil, err
	}

	if replacement, ok := cfg.Hooks.OnSuccess(ctx, value, resp); ok {
		value = replacement
	}

	if cfg.WithCache {
		c.cache.Set(ctx, cacheKey, value, cfg.CacheTTL)
	}

	requestsTotal.WithLabelValues("success").Inc()
	return value, nil
}

// GetJSON fetches address with JSON decoding forced and unmarshals the
// result into target.
func (c *Client) GetJSON(ctx context.Context, address string, target any, opts ...CallOption) error {
	opts = append(opts, WithResponseType(ResponseTypeJSON))
	value, err := c.Fetch(ctx, address, RequestOptions{}, opts...)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("re-encode result: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode into target: %w", err)
	}
	return nil
}

// Cache exposes the cache store for invalidation and explicit sweeps.
func (c *Client) Cache() *cache.CacheStore {
	return c.cache
}

// Close releases the cache store's resources.
func (c *Client) Close() error {
	return c.cache.Close()
}
