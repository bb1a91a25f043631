package transport

import (
	"fmt"
	"maps"

	"github.com/pookanfai/studio/internal/utils"
)

// Capability tags which remote capability an envelope targets.
type Capability string

const (
	CapabilityText   Capability = "text"
	CapabilityImage  Capability = "image"
	CapabilitySpeech Capability = "speech"
)

// Envelope is one outbound request. It is immutable once built: the payload
// is encoded at construction and accessors return copies.
type Envelope struct {
	capability Capability
	endpoint   string
	body       []byte
	headers    map[string]string
}

// NewEnvelope encodes payload as JSON and returns the envelope for one call.
func NewEnvelope(capability Capability, endpoint string, payload any, headers map[string]string) (Envelope, error) {
	if endpoint == "" {
		return Envelope{}, fmt.Errorf("transport: empty endpoint for %s request", capability)
	}

	body, err := utils.MarshalJSON(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("transport: %s payload: %w", capability, err)
	}

	return Envelope{
		capability: capability,
		endpoint:   endpoint,
		body:       body,
		headers:    maps.Clone(headers),
	}, nil
}

// Capability returns the capability tag.
func (e Envelope) Capability() Capability { return e.capability }

// Endpoint returns the target URL.
func (e Envelope) Endpoint() string { return e.endpoint }

// Body returns a copy of the encoded JSON payload.
func (e Envelope) Body() []byte { return append([]byte(nil), e.body...) }

// Headers returns a copy of the extra request headers.
func (e Envelope) Headers() map[string]string { return maps.Clone(e.headers) }

func (e Envelope) headerOptions() []utils.HeaderOption {
	options := make([]utils.HeaderOption, 0, len(e.headers))
	for key, value := range e.headers {
		options = append(options, utils.HeaderOption{Key: key, Value: value})
	}
	return options
}

// Response is the raw body of a successful call.
type Response struct {
	StatusCode int
	Body       []byte
}
