package client

import "time"

// ResponseType selects how a response body is decoded.
type ResponseType string

const (
	// ResponseTypeAuto sniffs the Content-Type header: JSON media types
	// decode as structured data, everything else as raw text.
	ResponseTypeAuto ResponseType = "auto"

	// ResponseTypeJSON always decodes the body as JSON.
	ResponseTypeJSON ResponseType = "json"

	// ResponseTypeText always returns the body as a string.
	ResponseTypeText ResponseType = "text"
)

// Config is the effective configuration snapshot for one call, produced by
// layering process-wide defaults, instance defaults and per-call overrides
// in increasing priority.
type Config struct {
	// Retry
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	RetryOnErrors  []int

	// Decoding
	ResponseType ResponseType

	// Caching
	WithCache bool
	CacheTTL  time.Duration
	CacheKey  string

	// Call shaping. ThrottleTime takes precedence over DebounceTime.
	ThrottleTime time.Duration
	DebounceTime time.Duration

	// Hooks observe and steer the call lifecycle; never nil.
	Hooks Hooks
}

// Defaults returns the process-wide default configuration.
func Defaults() Config {
	return Config{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		BackoffFactor:  2.0,
		RetryOnErrors:  []int{404, 500},
		ResponseType:   ResponseTypeAuto,
		WithCache:      false,
		CacheTTL:       15 * time.Minute,
		ThrottleTime:   0,
		DebounceTime:   0,
		Hooks:          BaseHooks{},
	}
}

// retryable reports whether status is a member of the RetryOnErrors set.
func (c *Config) retryable(status int) bool {
	for _, s := range c.RetryOnErrors {
		if s == status {
			return true
		}
	}
	return false
}

// CallOption overrides one configuration field. CallOptions apply at two
// layers: passed to New they set instance defaults, passed to Fetch they
// override for that call only.
type CallOption func(*Config)

// WithMaxRetries sets the maximum number of attempts.
func WithMaxRetries(n int) CallOption {
	return func(c *Config) { c.MaxRetries = n }
}

// WithInitialBackoff sets the wait before the first retry.
func WithInitialBackoff(d time.Duration) CallOption {
	return func(c *Config) { c.InitialBackoff = d }
}

// WithMaxBackoff caps the wait between retries.
func WithMaxBackoff(d time.Duration) CallOption {
	return func(c *Config) { c.MaxBackoff = d }
}

// WithBackoffFactor sets the exponential backoff multiplier.
func WithBackoffFactor(f float64) CallOption {
	return func(c *Config) { c.BackoffFactor = f }
}

// WithRetryOnErrors replaces the set of status codes treated as retryable
// failures. A non-ok status outside this set is returned as a successful
// result, body included.
func WithRetryOnErrors(statuses ...int) CallOption {
	return func(c *Config) { c.RetryOnErrors = statuses }
}

// WithResponseType forces json or text decoding instead of sniffing.
func WithResponseType(t ResponseType) CallOption {
	return func(c *Config) { c.ResponseType = t }
}

// WithCache enables the cache short-circuit and write-back for the call.
func WithCache(enabled bool) CallOption {
	return func(c *Config) { c.WithCache = enabled }
}

// WithCacheTTL sets the TTL for cache write-back.
func WithCacheTTL(ttl time.Duration) CallOption {
	return func(c *Config) { c.CacheTTL = ttl }
}

// WithCacheKey overrides the cache key for the call. By default the key is
// the address itself: identical addresses with different bodies collide
// unless the caller supplies a distinguishing key here.
func WithCacheKey(key string) CallOption {
	return func(c *Config) { c.CacheKey = key }
}

// WithThrottleTime enforces a minimum spacing between executions of the
// same logical request, coalescing callers onto an in-flight call.
func WithThrottleTime(d time.Duration) CallOption {
	return func(c *Config) { c.ThrottleTime = d }
}

// WithDebounceTime delays execution until the key has been quiet for d;
// newer calls supersede pending ones.
func WithDebounceTime(d time.Duration) CallOption {
	return func(c *Config) { c.DebounceTime = d }
}

// WithHooks installs lifecycle hooks. Passing nil restores the no-op hooks.
func WithHooks(h Hooks) CallOption {
	return func(c *Config) {
		if h == nil {
			h = BaseHooks{}
		}
		c.Hooks = h
	}
}
