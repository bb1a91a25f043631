package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pookanfai/studio/providers/observability"
)

const (
	// DefaultMaxAttempts is the total number of attempts per Execute call.
	DefaultMaxAttempts = 5

	// DefaultBaseDelay is the wait after the first failed attempt.
	DefaultBaseDelay = time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryConfig tunes the retry loop. Zero values are replaced by defaults.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Default: 5.
	MaxAttempts int

	// BaseDelay is multiplied by 2^attempt (attempt starting at 0) to get the
	// wait after a failed attempt. There is no jitter and no cap.
	// Default: 1s.
	BaseDelay time.Duration

	// Sleep performs the wait. Default: a timer that honors ctx.
	Sleep SleepFunc
}

func applyRetryDefaults(config *RetryConfig) {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = DefaultBaseDelay
	}
	if config.Sleep == nil {
		config.Sleep = sleepContext
	}
}

// Backoff returns the wait after failed attempt number attempt (0-indexed):
// base * 2^attempt.
func Backoff(base time.Duration, attempt int) time.Duration {
	return base << attempt
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryState lives for one Execute call.
type retryState struct {
	attempt  int
	delay    time.Duration
	terminal bool
}

func newRetryMiddleware(config RetryConfig, logger *slog.Logger, observer observability.Provider) Middleware {
	applyRetryDefaults(&config)

	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, envelope Envelope) (*Response, error) {
			state := retryState{}

			for {
				response, err := next(ctx, envelope)
				if err == nil {
					return response, nil
				}

				state.terminal = state.attempt >= config.MaxAttempts-1
				if state.terminal {
					return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, config.MaxAttempts, err)
				}

				state.delay = Backoff(config.BaseDelay, state.attempt)
				logger.DebugContext(ctx, "transport retry scheduled",
					slog.String("capability", string(envelope.capability)),
					slog.Int("attempt", state.attempt+1),
					slog.Duration("delay", state.delay),
				)
				recordRetry(ctx, observer, envelope, state.attempt+1, state.delay, err)

				if sleepErr := config.Sleep(ctx, state.delay); sleepErr != nil {
					return nil, sleepErr
				}
				state.attempt++
			}
		}
	}
}
