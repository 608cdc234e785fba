package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopmesh/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mutableProvider struct {
	settings config.ResilienceSettings
}

func (p *mutableProvider) Settings() config.ResilienceSettings { return p.settings }

func fastSettings() config.ResilienceSettings {
	return config.ResilienceSettings{
		MaxAttempts: 3,
		RetryWait:   time.Millisecond,
		FailureRate: 0.5,
		WindowSize:  3,
		Cooldown:    50 * time.Millisecond,
	}
}

var errBoom = errors.New("boom")

func TestDoRetriesUpToMaxAttempts(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())

	calls := 0
	err := executor.Do(context.Background(), "dep", func(ctx context.Context) error {
		calls++
		return errBoom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, calls, "a failing call is attempted exactly MaxAttempts times")
}

func TestDoStopsRetryingOnSuccess(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())

	calls := 0
	err := executor.Do(context.Background(), "dep", func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errBoom
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetrySettingsAreReadPerCall(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())
	ctx := context.Background()

	calls := 0
	executor.Do(ctx, "fresh", func(ctx context.Context) error {
		calls++
		return errBoom
	})
	require.Equal(t, 3, calls)

	// Tighten the budget between calls; the next call must see it.
	provider.settings.MaxAttempts = 1
	calls = 0
	executor.Do(ctx, "fresh", func(ctx context.Context) error {
		calls++
		return errBoom
	})
	assert.Equal(t, 1, calls)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())
	ctx := context.Background()

	// Three exhausted retry sequences fill the window and trip the
	// breaker.
	for i := 0; i < 3; i++ {
		err := executor.Do(ctx, "dep", func(ctx context.Context) error { return errBoom })
		require.Error(t, err)
		require.False(t, IsCircuitOpen(err))
	}

	calls := 0
	err := executor.Do(ctx, "dep", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsCircuitOpen(err), "open breaker must short-circuit")
	assert.Equal(t, 0, calls, "open breaker must not invoke the call at all")
}

func TestBreakerTripsAfterHealthyTraffic(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())
	ctx := context.Background()

	// A long healthy run must not dilute a later failure streak: the
	// trip condition looks at the last WindowSize outcomes only.
	for i := 0; i < 100; i++ {
		require.NoError(t, executor.Do(ctx, "dep", func(ctx context.Context) error { return nil }))
	}

	// Window size 3, threshold 0.5: two failures push the recent
	// failure rate to 2/3 and trip the breaker.
	for i := 0; i < 2; i++ {
		err := executor.Do(ctx, "dep", func(ctx context.Context) error { return errBoom })
		require.Error(t, err)
		require.False(t, IsCircuitOpen(err))
	}

	calls := 0
	err := executor.Do(ctx, "dep", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsCircuitOpen(err), "breaker must open on recent failures despite the healthy history")
	assert.Equal(t, 0, calls)
}

func TestBreakerThresholdIsReadPerCall(t *testing.T) {
	settings := fastSettings()
	settings.FailureRate = 2.0 // unreachable, the breaker can never trip
	provider := &mutableProvider{settings}
	executor := New(provider, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := executor.Do(ctx, "dep", func(ctx context.Context) error { return errBoom })
		require.Error(t, err)
		require.False(t, IsCircuitOpen(err))
	}

	// Lowering the threshold takes effect on the next failure.
	provider.settings.FailureRate = 0.5
	err := executor.Do(ctx, "dep", func(ctx context.Context) error { return errBoom })
	require.Error(t, err)
	require.False(t, IsCircuitOpen(err))

	calls := 0
	err = executor.Do(ctx, "dep", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.True(t, IsCircuitOpen(err))
	assert.Equal(t, 0, calls)
}

func TestBreakerRecoversAfterCooldown(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		executor.Do(ctx, "dep", func(ctx context.Context) error { return errBoom })
	}
	require.True(t, IsCircuitOpen(executor.Do(ctx, "dep", func(ctx context.Context) error { return nil })))

	time.Sleep(60 * time.Millisecond)

	// Half-open: the single probe succeeds and closes the breaker.
	calls := 0
	err := executor.Do(ctx, "dep", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Closed again: calls flow normally.
	err = executor.Do(ctx, "dep", func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestBreakersAreIsolatedPerDependency(t *testing.T) {
	provider := &mutableProvider{fastSettings()}
	executor := New(provider, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		executor.Do(ctx, "failing", func(ctx context.Context) error { return errBoom })
	}
	require.True(t, IsCircuitOpen(executor.Do(ctx, "failing", func(ctx context.Context) error { return nil })))

	// The other dependency's breaker is untouched.
	err := executor.Do(ctx, "healthy", func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestIsCircuitOpenIgnoresOrdinaryErrors(t *testing.T) {
	assert.False(t, IsCircuitOpen(errBoom))
	assert.False(t, IsCircuitOpen(nil))
}
