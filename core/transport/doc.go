// Package transport executes a single outbound call against the remote
// generative service with bounded exponential-backoff retry.
//
// Every attempt failure, whether a non-2xx status or a transport-level error,
// is retried after 1s * 2^attempt until [DefaultMaxAttempts] attempts have
// been made. Backoff is deterministic: no jitter, no Retry-After handling.
// Retries are internal; callers only ever see the final outcome.
//
// # Usage
//
//	t := transport.New(
//	    transport.WithLogger(logger),
//	    transport.WithAttemptTimeout(60*time.Second),
//	)
//	envelope, err := transport.NewEnvelope(transport.CapabilityText, url, payload, headers)
//	if err != nil {
//	    return err
//	}
//	resp, err := t.Execute(ctx, envelope)
//
// The chain is built from [Middleware] values the same way for every
// capability:
//
//	Observability (outermost) -> Retry -> Logging -> Timeout -> HTTP POST
//
// With [WithObserver] each call produces one span covering all attempts,
// plus request, failure, retry and duration metrics.
package transport
