package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pookanfai/studio/core/transport"
	"github.com/pookanfai/studio/internal/logging"
)

// Provider issues the three capability calls against the Generative Language
// API. It owns payload construction and response parsing; retry and HTTP are
// delegated to a shared transport.Transport.
type Provider struct {
	apiKey    string
	baseURL   string
	models    Models
	transport *transport.Transport
	logger    *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = baseURL }
}

// WithModels overrides the per-capability models. Empty fields keep defaults.
func WithModels(models Models) Option {
	return func(p *Provider) { p.models = models }
}

// WithTransport sets the transport used for every call.
func WithTransport(t *transport.Transport) Option {
	return func(p *Provider) { p.transport = t }
}

// WithLogger sets the provider logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// New creates a Provider for apiKey. An empty key is accepted; every call
// then fails with ErrMissingAPIKey without touching the network.
func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{apiKey: apiKey, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(p)
	}

	p.models = p.models.withDefaults()
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.transport == nil {
		p.transport = transport.New(transport.WithLogger(p.logger))
	}
	return p
}

// Configured reports whether an API key is present.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

// Models returns the effective per-capability models.
func (p *Provider) Models() Models {
	return p.models
}

// GenerateText runs a text generation call.
func (p *Provider) GenerateText(ctx context.Context, request TextRequest) (*TextResult, error) {
	body, err := p.call(ctx, transport.CapabilityText, GenerateContentURL(p.baseURL, p.models.Text), BuildTextRequest(request))
	if err != nil {
		return nil, err
	}
	return ParseTextResponse(body)
}

// GenerateImage runs an image generation call.
func (p *Provider) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	body, err := p.call(ctx, transport.CapabilityImage, PredictURL(p.baseURL, p.models.Image), BuildImageRequest(prompt))
	if err != nil {
		return nil, err
	}
	return ParseImageResponse(body)
}

// SynthesizeSpeech runs a speech synthesis call and returns the raw inline
// audio. The text is sent as given.
func (p *Provider) SynthesizeSpeech(ctx context.Context, text string, voice Voice) (*InlineData, error) {
	body, err := p.call(ctx, transport.CapabilitySpeech, GenerateContentURL(p.baseURL, p.models.Speech), BuildSpeechRequest(text, voice))
	if err != nil {
		return nil, err
	}
	return ParseSpeechResponse(body)
}

func (p *Provider) call(ctx context.Context, capability transport.Capability, url string, payload any) ([]byte, error) {
	if !p.Configured() {
		return nil, ErrMissingAPIKey
	}

	envelope, err := transport.NewEnvelope(capability, url, payload, AuthHeaders(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: building %s request: %w", capability, err)
	}

	p.logger.DebugContext(ctx, "gemini request",
		slog.String("capability", string(capability)),
		slog.String("endpoint", url),
	)

	resp, err := p.transport.Execute(ctx, envelope)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
