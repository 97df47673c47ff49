package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/aviary-ai/aviary"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransient(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", ai.NewTransientError("overloaded", 503, nil)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(5), func() (string, error) {
		calls++
		return "", ai.NewPermanentError("not found", 404, nil)
	})

	assert.True(t, ai.IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestDoStopsOnUncategorized(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	_, err := Do(context.Background(), fastConfig(5), func() (string, error) {
		calls++
		return "", boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		return "", ai.NewTransientError("still down", 500, nil)
	})

	assert.True(t, ai.IsTransient(err))
	assert.Equal(t, 3, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := Config{MaxAttempts: 5, InitialDelay: time.Minute, MaxDelay: time.Minute, Multiplier: 1.0}
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		calls++
		return "", ai.NewTransientError("slow", 500, nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDelayBounds(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     4 * time.Second,
		Multiplier:   2.0,
	}

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	// Capped at MaxDelay from here on
	assert.Equal(t, 4*time.Second, cfg.Delay(10))
	// Negative attempts clamp to the initial delay
	assert.Equal(t, time.Second, cfg.Delay(-1))
}

func TestDelayJitterStaysInRange(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
		Jitter:       0.1,
	}

	for i := 0; i < 50; i++ {
		d := cfg.Delay(0)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
}
