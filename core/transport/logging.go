package transport

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pookanfai/studio/internal/utils"
)

// newLoggingMiddleware logs every attempt. Failed attempts are logged with
// their status code and body; headers are never logged because they carry
// the credential.
func newLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, envelope Envelope) (*Response, error) {
			start := time.Now()
			response, err := next(ctx, envelope)
			elapsed := time.Since(start)

			if err == nil {
				logger.DebugContext(ctx, "transport attempt succeeded",
					slog.String("capability", string(envelope.capability)),
					slog.Int("status", response.StatusCode),
					slog.Int("response_bytes", len(response.Body)),
					slog.Duration("duration", elapsed),
				)
				return response, nil
			}

			var transportErr *TransportError
			if errors.As(err, &transportErr) {
				logger.ErrorContext(ctx, "API error",
					slog.String("capability", string(envelope.capability)),
					slog.Int("status", transportErr.Status),
					slog.String("body", utils.TruncateString(transportErr.Body, utils.DefaultMaxStringLength)),
					slog.Duration("duration", elapsed),
				)
				return nil, err
			}

			logger.ErrorContext(ctx, "transport attempt failed",
				slog.String("capability", string(envelope.capability)),
				slog.String("error", err.Error()),
				slog.Duration("duration", elapsed),
			)
			return nil, err
		}
	}
}
