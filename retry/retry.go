package retry

import (
	"context"
	"time"

	ai "github.com/aviary-ai/aviary"
)

// Do executes the given function with retry logic.
// Only errors categorized as transient are retried; everything else is
// returned immediately. Backoff waits respect context cancellation.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !ai.IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(cfg.Delay(attempt)):
			}
		}
	}

	return zero, lastErr
}
