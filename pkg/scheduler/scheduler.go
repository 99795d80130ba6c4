// Package scheduler decides when a logical request may reach the retry
// executor: immediately, after a minimum inter-call spacing (throttle), or
// after a quiet period with superseding (debounce).
//
// State is keyed by a deterministic call key (see DeriveKey): two calls with
// an equal key are the same logical request for scheduling purposes, even
// when issued by different callers.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/WillardWam/Fetch-Resilient/pkg/logging"
)

// ExecuteFunc performs the underlying request once scheduling admits it.
type ExecuteFunc func(ctx context.Context) (any, error)

// Options selects the scheduling policy for one call. A positive
// ThrottleTime takes precedence over DebounceTime; if neither is set the
// call dispatches immediately.
type Options struct {
	ThrottleTime time.Duration
	DebounceTime time.Duration
}

// call is the shared future for one execution. Coalesced callers wait on
// done; a superseded debounce call's future is simply never settled.
type call struct {
	done  chan struct{}
	value any
	err   error
}

// wait blocks until the call settles or ctx is cancelled.
func (c *call) wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Scheduler shapes calls sharing a key. Each Scheduler owns its state;
// independent schedulers do not interfere.
type Scheduler struct {
	mu            sync.Mutex
	lastExecution map[string]time.Time
	inFlight      map[string]*call
	pending       map[string]*time.Timer
	logger        zerolog.Logger
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		lastExecution: make(map[string]time.Time),
		inFlight:      make(map[string]*call),
		pending:       make(map[string]*time.Timer),
		logger:        logging.NewLogger("scheduler"),
	}
}

// Schedule dispatches fn under the policy selected by opts and returns its
// result.
//
// Throttle: executions sharing a key are spaced at least ThrottleTime apart.
// A caller arriving while an execution is in flight is coalesced onto it and
// receives that execution's result. Callers arriving inside the spacing
// window with nothing in flight each wait out their own remainder and may
// each trigger an execution; they are not coalesced with one another.
//
// Debounce: each call supersedes any pending timer for the key and installs
// its own. Only the call whose timer fires executes and settles. A
// superseded caller's future never settles; its only escape is its own
// context.
func (s *Scheduler) Schedule(ctx context.Context, key string, opts Options, fn ExecuteFunc) (any, error) {
	switch {
	case opts.ThrottleTime > 0:
		return s.throttle(ctx, key, opts.ThrottleTime, fn)
	case opts.DebounceTime > 0:
		return s.debounce(ctx, key, opts.DebounceTime, fn)
	default:
		schedulerExecutions.WithLabelValues("immediate").Inc()
		return fn(ctx)
	}
}

func (s *Scheduler) throttle(ctx context.Context, key string, spacing time.Duration, fn ExecuteFunc) (any, error) {
	s.mu.Lock()

	last, seen := s.lastExecution[key]
	if !seen || time.Since(last) >= spacing {
		return s.runLocked(ctx, key, fn)
	}

	if inFlight, ok := s.inFlight[key]; ok {
		s.mu.Unlock()
		schedulerCoalesced.Inc()
		s.logger.Debug().Str("key", key).Msg("Coalescing onto in-flight call")
		return inFlight.wait(ctx)
	}

	remaining := spacing - time.Since(last)
	s.mu.Unlock()

	s.logger.Debug().Str("key", key).Dur("wait", remaining).Msg("Throttled, waiting out spacing window")
	schedulerThrottleWaits.Inc()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(remaining):
	}

	s.mu.Lock()
	return s.runLocked(ctx, key, fn)
}

// runLocked records the execution time, registers the in-flight future for
// the duration of the execution, and runs fn. The caller must hold s.mu;
// runLocked releases it.
func (s *Scheduler) runLocked(ctx context.Context, key string, fn ExecuteFunc) (any, error) {
	c := &call{done: make(chan struct{})}
	s.lastExecution[key] = time.Now()
	s.inFlight[key] = c
	s.mu.Unlock()

	schedulerExecutions.WithLabelValues("throttle").Inc()
	c.value, c.err = fn(ctx)
	close(c.done)

	s.mu.Lock()
	if s.inFlight[key] == c {
		delete(s.inFlight, key)
	}
	s.mu.Unlock()

	return c.value, c.err
}

func (s *Scheduler) debounce(ctx context.Context, key string, quiet time.Duration, fn ExecuteFunc) (any, error) {
	c := &call{done: make(chan struct{})}

	s.mu.Lock()
	if prev, ok := s.pending[key]; ok && prev.Stop() {
		// The superseded caller's future is never settled.
		schedulerSuperseded.Inc()
		s.logger.Debug().Str("key", key).Msg("Superseded pending debounce call")
	}

	var timer *time.Timer
	timer = time.AfterFunc(quiet, func() {
		s.mu.Lock()
		if s.pending[key] == timer {
			delete(s.pending, key)
		}
		s.mu.Unlock()

		schedulerExecutions.WithLabelValues("debounce").Inc()
		c.value, c.err = fn(ctx)
		close(c.done)
	})
	s.pending[key] = timer
	s.mu.Unlock()

	return c.wait(ctx)
}
