package transport

import (
	"context"
	"time"
)

// newTimeoutMiddleware bounds a single attempt. It sits below retry, so a
// timed-out attempt counts as a failed attempt and is retried like any other.
// A deadline already on the caller's context still wins if it is shorter.
func newTimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, envelope Envelope) (*Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, envelope)
		}
	}
}
