package studio

import (
	"errors"

	"github.com/pookanfai/studio/core/transport"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

var (
	// ErrNotConfigured means no API key is available. It is checked before
	// any network attempt.
	ErrNotConfigured = errors.New("studio: API key is not configured")

	// ErrEmptyResult means the service returned no usable candidate or
	// prediction.
	ErrEmptyResult = gemini.ErrEmptyResult

	// ErrEmptyInput rejects blank user input.
	ErrEmptyInput = errors.New("studio: input is empty")

	// ErrUnknownPreset is returned by RunPreset for an unknown preset ID.
	ErrUnknownPreset = errors.New("studio: unknown preset")

	// ErrNoCharacter is returned by Roleplay before StartRoleplay.
	ErrNoCharacter = errors.New("studio: no roleplay character")

	// ErrSpeechFailed means synthesis produced no audio.
	ErrSpeechFailed = errors.New("studio: speech synthesis failed")
)

// failureDetail returns the most specific description of err for display:
// the final attempt's HTTP or network error when retries were exhausted.
func failureDetail(err error) string {
	var transportErr *transport.TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Error()
	}
	var networkErr *transport.NetworkError
	if errors.As(err, &networkErr) {
		return networkErr.Error()
	}
	return err.Error()
}
