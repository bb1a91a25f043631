// Package observability defines the tracing and metrics interfaces the
// studio records outbound calls through.
//
// [Provider] composes [Tracer] and [Metrics]. The transport opens one span
// per call and keeps it on the context, so inner layers such as retry can
// attach events with [SpanFromContext]. Logging is not part of the
// interface: components take a *slog.Logger directly.
//
// semconv.go holds the attribute, span, event and metric names. The slog
// subpackage is the in-process implementation.
package observability
