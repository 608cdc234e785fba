// Package resilience composes bounded retry and circuit breaking
// around remote detail lookups. The wrapping is an explicit decorator:
// callers pass the lookup function to Do, nothing is intercepted
// behind the scenes.
package resilience

import (
	"context"
	"errors"
	"sync"

	"shopmesh/internal/config"

	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Executor runs remote calls through a per-dependency circuit breaker
// wrapped around a retry policy. One breaker exists per dependency
// name, shared by all requests in the process; its counters are safe
// for concurrent use.
type Executor struct {
	provider config.ResilienceProvider
	logger   *zap.Logger

	mu       sync.Mutex
	breakers map[string]*breakerEntry
}

type breakerEntry struct {
	cb     *gobreaker.CircuitBreaker[struct{}]
	window *outcomeWindow
}

// New creates an Executor. Retry parameters and the trip threshold
// are read from the provider on every call; window size and cool-down
// are read when a dependency's breaker is first used.
func New(provider config.ResilienceProvider, logger *zap.Logger) *Executor {
	return &Executor{
		provider: provider,
		logger:   logger,
		breakers: make(map[string]*breakerEntry),
	}
}

// Do invokes fn for the named dependency. The breaker sees one
// failure per exhausted retry sequence, not one per attempt. When the
// breaker is open the call short-circuits without invoking fn; the
// returned error is then gobreaker.ErrOpenState, which callers treat
// exactly like an exhausted-retry failure.
func (e *Executor) Do(ctx context.Context, dependency string, fn func(context.Context) error) error {
	entry := e.breaker(dependency)

	_, err := entry.cb.Execute(func() (struct{}, error) {
		err := e.withRetry(ctx, dependency, fn)
		entry.window.record(err != nil)
		return struct{}{}, err
	})
	return err
}

// IsCircuitOpen reports whether err is a breaker short-circuit rather
// than a real call failure.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (e *Executor) withRetry(ctx context.Context, dependency string, fn func(context.Context) error) error {
	settings := e.provider.Settings()

	var backoff retry.Backoff
	if settings.ExponentialBackoff {
		backoff = retry.NewExponential(settings.RetryWait)
	} else {
		backoff = retry.NewConstant(settings.RetryWait)
	}
	if settings.MaxAttempts > 0 {
		// MaxAttempts counts calls, WithMaxRetries counts re-calls.
		backoff = retry.WithMaxRetries(uint64(settings.MaxAttempts-1), backoff)
	}

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := fn(ctx); err != nil {
			e.logger.Warn("remote call failed",
				zap.String("dependency", dependency),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (e *Executor) breaker(dependency string) *breakerEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if entry, ok := e.breakers[dependency]; ok {
		return entry
	}

	settings := e.provider.Settings()
	window := newOutcomeWindow(settings.WindowSize)
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        dependency,
		MaxRequests: 1, // single probe in half-open
		Timeout:     settings.Cooldown,
		// Trip on the failure rate over the last WindowSize outcomes,
		// not over everything since the breaker last closed. Without
		// the bounded window a long healthy run would dilute any
		// later failure streak below the threshold forever.
		ReadyToTrip: func(gobreaker.Counts) bool {
			rate, full := window.failureRate()
			return full && rate >= e.provider.Settings().FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateClosed {
				window.reset()
			}
			e.logger.Info("circuit breaker state change",
				zap.String("dependency", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	entry := &breakerEntry{cb: cb, window: window}
	e.breakers[dependency] = entry
	return entry
}

// outcomeWindow is a fixed-size ring of the most recent call
// outcomes for one dependency.
type outcomeWindow struct {
	mu       sync.Mutex
	failed   []bool
	next     int
	recorded int
}

func newOutcomeWindow(size uint32) *outcomeWindow {
	if size == 0 {
		size = 1
	}
	return &outcomeWindow{failed: make([]bool, size)}
}

func (w *outcomeWindow) record(failed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.failed[w.next] = failed
	w.next = (w.next + 1) % len(w.failed)
	if w.recorded < len(w.failed) {
		w.recorded++
	}
}

// failureRate returns the failure fraction over the recorded
// outcomes and whether the window has filled. An unfilled window
// never trips the breaker.
func (w *outcomeWindow) failureRate() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.recorded == 0 {
		return 0, false
	}
	failures := 0
	for i := 0; i < w.recorded; i++ {
		if w.failed[i] {
			failures++
		}
	}
	return float64(failures) / float64(w.recorded), w.recorded == len(w.failed)
}

func (w *outcomeWindow) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.failed {
		w.failed[i] = false
	}
	w.next = 0
	w.recorded = 0
}
