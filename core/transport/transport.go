package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pookanfai/studio/internal/logging"
	"github.com/pookanfai/studio/internal/utils"
	"github.com/pookanfai/studio/providers/observability"
)

// SendFunc performs one attempt of an envelope. It is the unit threaded
// through the middleware chain.
type SendFunc func(ctx context.Context, envelope Envelope) (*Response, error)

// Middleware wraps the next SendFunc. Middlewares are applied outermost-first:
// the first entry in a slice runs first on the way in.
type Middleware func(next SendFunc) SendFunc

// Transport executes envelopes against the remote service with bounded
// exponential-backoff retry. A Transport holds no per-call state and may be
// shared by every capability.
type Transport struct {
	httpClient *http.Client
	logger     *slog.Logger
	observer   observability.Provider
	retry      RetryConfig
	timeout    time.Duration
	base       SendFunc
	extra      []Middleware

	send SendFunc
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the HTTP client used for attempts.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) { t.httpClient = client }
}

// WithLogger sets the logger for per-attempt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) { t.logger = logger }
}

// WithObserver records a span and request metrics for every Execute call.
func WithObserver(observer observability.Provider) Option {
	return func(t *Transport) { t.observer = observer }
}

// WithRetry replaces the retry configuration. Zero fields take defaults.
func WithRetry(config RetryConfig) Option {
	return func(t *Transport) { t.retry = config }
}

// WithAttemptTimeout bounds each individual attempt. Zero disables the bound.
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(t *Transport) { t.timeout = timeout }
}

// WithSendFunc replaces the HTTP round-trip at the bottom of the chain.
// Tests use it to script attempt outcomes without a network.
func WithSendFunc(send SendFunc) Option {
	return func(t *Transport) { t.base = send }
}

// WithMiddleware inserts additional middleware between retry and the
// per-attempt logging, so it observes every attempt.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(t *Transport) { t.extra = append(t.extra, middlewares...) }
}

// New builds a Transport. The chain is, outermost first:
//
//	Observability -> Retry -> extra middleware -> Logging -> Timeout -> HTTP
func New(opts ...Option) *Transport {
	t := &Transport{}
	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = logging.Discard()
	}
	if t.observer == nil {
		t.observer = observability.Nop{}
	}
	if t.base == nil {
		t.base = httpSend(t.httpClient)
	}

	chain := []Middleware{
		newObservabilityMiddleware(t.observer),
		newRetryMiddleware(t.retry, t.logger, t.observer),
	}
	chain = append(chain, t.extra...)
	chain = append(chain, newLoggingMiddleware(t.logger))
	if t.timeout > 0 {
		chain = append(chain, newTimeoutMiddleware(t.timeout))
	}

	t.send = buildChain(t.base, chain)
	return t
}

// Execute runs envelope through the chain and returns the raw response of
// the first successful attempt. After the final failed attempt it returns an
// error wrapping ErrRetryExhausted and either *TransportError or *NetworkError.
func (t *Transport) Execute(ctx context.Context, envelope Envelope) (*Response, error) {
	return t.send(ctx, envelope)
}

// MaxAttempts reports the effective attempt budget.
func (t *Transport) MaxAttempts() int {
	config := t.retry
	applyRetryDefaults(&config)
	return config.MaxAttempts
}

func buildChain(base SendFunc, middlewares []Middleware) SendFunc {
	chain := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}
	return chain
}

// httpSend is the single-attempt HTTP round-trip. Non-2xx responses become
// *TransportError; anything that prevents a response becomes *NetworkError.
func httpSend(client *http.Client) SendFunc {
	return func(ctx context.Context, envelope Envelope) (*Response, error) {
		result, err := utils.DoPost(ctx, client, envelope.endpoint, envelope.body, envelope.headerOptions()...)
		if err != nil {
			return nil, &NetworkError{Err: err}
		}
		if !result.OK() {
			return nil, &TransportError{Status: result.StatusCode, Body: string(result.Body)}
		}
		return &Response{StatusCode: result.StatusCode, Body: result.Body}, nil
	}
}
