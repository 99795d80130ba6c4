package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/WillardWam/Fetch-Resilient/pkg/logging"
)

// Prometheus metrics for retry operations.
var (
	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fetchres_retries_total",
		Help: "Total number of retry attempts",
	})

	retryBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fetchres_retry_backoff_seconds",
		Help:    "Backoff duration before retry attempts",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	retryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fetchres_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted",
	})
)

// Executor issues one logical request through the transport, retrying on
// configured failure conditions with exponential backoff.
type Executor struct {
	transport Transport
	logger    zerolog.Logger
}

// NewExecutor creates an Executor on the given transport.
func NewExecutor(transport Transport) *Executor {
	return &Executor{
		transport: transport,
		logger:    logging.NewLogger("retry"),
	}
}

// Execute runs the retry loop and returns the raw response.
//
// A transport failure or a response whose status is in RetryOnErrors counts
// as a failed attempt. Any other response, ok or not, is returned as-is: a
// 404 with RetryOnErrors={500} resolves successfully with the 404 body.
//
// After each failure the OnError hook runs with the new attempt count; a
// non-nil replacement error terminates the loop immediately, even with
// attempts remaining. Otherwise the loop waits
// min(initialBackoff * factor^(n-1), maxBackoff) before attempt n+1, and
// gives up with ErrMaxRetriesExceeded once MaxRetries attempts are spent.
func (e *Executor) Execute(ctx context.Context, address string, reqOpts RequestOptions, cfg Config) (*Response, error) {
	attempt := 0
	backoff := cfg.InitialBackoff

	if cfg.Hooks == nil {
		cfg.Hooks = BaseHooks{}
	}

	for {
		// The OnRetry hook may redirect a retry; the substitution holds
		// for this attempt only.
		attemptAddr, attemptOpts := address, reqOpts
		if attempt > 0 {
			if newAddr, newOpts := cfg.Hooks.OnRetry(ctx, attempt, address, reqOpts); newAddr != "" || newOpts != nil {
				if newAddr != "" {
					attemptAddr = newAddr
				}
				if newOpts != nil {
					attemptOpts = *newOpts
				}
				e.logger.Debug().
					Int("attempt", attempt).
					Str("address", attemptAddr).
					Msg("Retry hook substituted request")
			}
		}

		resp, err := e.transport.Send(ctx, attemptAddr, attemptOpts)

		var attemptErr error
		if err != nil {
			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				err = &TransportError{Address: attemptAddr, Err: err}
			}
			attemptErr = err
		} else {
			cfg.Hooks.OnHTTPResponse(ctx, resp)

			if !resp.OK() && cfg.retryable(resp.Status) {
				attemptErr = &RetryableStatusError{StatusCode: resp.Status, Address: attemptAddr}
			} else {
				if attempt > 0 {
					e.logger.Debug().
						Int("attempt", attempt+1).
						Str("address", attemptAddr).
						Msg("Request succeeded after retry")
				}
				return resp, nil
			}
		}

		attempt++

		if replacement := cfg.Hooks.OnError(ctx, attemptErr, attempt); replacement != nil {
			// The hook took over error handling; stop retrying even
			// with attempts remaining.
			return nil, replacement
		}

		if attempt >= cfg.MaxRetries {
			retryExhaustedTotal.Inc()
			e.logger.Warn().
				Int("attempts", attempt).
				Str("address", address).
				Err(attemptErr).
				Msg("Retry attempts exhausted")
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt, attemptErr)
		}

		wait := backoff
		if wait > cfg.MaxBackoff {
			wait = cfg.MaxBackoff
		}

		retriesTotal.Inc()
		retryBackoffSeconds.Observe(wait.Seconds())
		e.logger.Warn().
			Int("attempt", attempt).
			Str("address", address).
			Dur("backoff", wait).
			Err(attemptErr).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry wait interrupted: %w", ctx.Err())
		case <-time.After(wait):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
	}
}
