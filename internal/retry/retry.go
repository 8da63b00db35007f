// Package retry provides a bounded-attempt wrapper around unreliable calls.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the total number of calls, including the first one.
	MaxAttempts int
	// Backoff is the delay between attempts. Zero means retry immediately,
	// which is the default for the interactive extraction flow.
	Backoff time.Duration
}

// DefaultConfig matches the extraction contract: three immediate attempts.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3}
}

// Do calls fn until it succeeds or cfg.MaxAttempts is exhausted. The last
// error is returned wrapped, so callers can unwrap the underlying fault.
func Do(ctx context.Context, cfg Config, fn func(context.Context) error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == attempts {
			break
		}

		if cfg.Backoff > 0 {
			select {
			case <-time.After(cfg.Backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
