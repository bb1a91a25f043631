package gemini

import "errors"

var (
	// ErrMissingAPIKey is returned before any request when no key is set.
	ErrMissingAPIKey = errors.New("gemini: API key is not set")

	// ErrEmptyResult means the service answered but produced no usable
	// candidate, prediction, or audio part.
	ErrEmptyResult = errors.New("gemini: empty result")

	// ErrMalformedResponse means the response body could not be decoded.
	ErrMalformedResponse = errors.New("gemini: malformed response")
)
