package transport

import (
	"context"
	"errors"
	"time"

	"github.com/pookanfai/studio/providers/observability"
)

// newObservabilityMiddleware wraps a whole Execute call in one span and
// records request count, failures and duration. It sits outside retry, so
// the span covers every attempt and the backoff between them.
func newObservabilityMiddleware(observer observability.Provider) Middleware {
	requests := observer.Counter(observability.MetricRequestCount)
	failures := observer.Counter(observability.MetricRequestFailures)
	duration := observer.Histogram(observability.MetricRequestDuration)

	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, envelope Envelope) (*Response, error) {
			capability := observability.String(observability.AttrCapability, string(envelope.capability))
			ctx, span := observer.StartSpan(ctx, observability.SpanTransportExecute,
				capability,
				observability.String(observability.AttrEndpoint, envelope.endpoint),
				observability.Int(observability.AttrHTTPRequestBodySize, len(envelope.body)),
			)
			defer span.End()

			start := time.Now()
			response, err := next(ctx, envelope)
			elapsed := time.Since(start)

			requests.Add(ctx, 1, capability)
			duration.Record(ctx, float64(elapsed.Milliseconds()), capability)

			if err != nil {
				failures.Add(ctx, 1, capability)
				span.RecordError(err)
				var transportErr *TransportError
				if errors.As(err, &transportErr) {
					span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, transportErr.Status))
				}
				span.SetStatus(observability.StatusError, "request failed")
				return nil, err
			}

			span.SetAttributes(
				observability.Int(observability.AttrHTTPStatusCode, response.StatusCode),
				observability.Int(observability.AttrHTTPResponseBodySize, len(response.Body)),
			)
			span.SetStatus(observability.StatusOK, "")
			return response, nil
		}
	}
}

// recordRetry notes a scheduled retry on the call's span, if any.
func recordRetry(ctx context.Context, observer observability.Provider, envelope Envelope, attempt int, delay time.Duration, err error) {
	observer.Counter(observability.MetricRetryCount).Add(ctx, 1,
		observability.String(observability.AttrCapability, string(envelope.capability)))

	span := observability.SpanFromContext(ctx)
	if span == nil {
		return
	}
	span.AddEvent(observability.EventAttemptFailed,
		observability.Int(observability.AttrAttempt, attempt),
		observability.Duration(observability.AttrBackoff, delay),
		observability.Error(err),
	)
}
