package observability

// Attribute keys.
const (
	// AttrCapability is the generation capability: text, image or speech.
	AttrCapability = "studio.capability"

	// AttrEndpoint is the request URL. It never carries the credential.
	AttrEndpoint = "studio.endpoint"

	// AttrAttempt is the 1-based number of a transport attempt.
	AttrAttempt = "transport.attempt"

	// AttrBackoff is the wait before the next attempt.
	AttrBackoff = "transport.backoff"

	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"

	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// Span names.
const (
	// SpanTransportExecute covers one Execute call, all attempts included.
	SpanTransportExecute = "transport.execute"
)

// Event names.
const (
	// EventAttemptFailed marks a failed attempt that will be retried.
	EventAttemptFailed = "transport.attempt.failed"
)

// Metric names.
const (
	// MetricRequestCount counts Execute calls by capability.
	MetricRequestCount = "studio.transport.request.count"

	// MetricRequestFailures counts Execute calls that exhausted every attempt.
	MetricRequestFailures = "studio.transport.request.failures"

	// MetricRetryCount counts scheduled retries.
	MetricRetryCount = "studio.transport.retry.count"

	// MetricRequestDuration records Execute wall time in milliseconds,
	// backoff included.
	MetricRequestDuration = "studio.transport.request.duration"
)
