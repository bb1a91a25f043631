package gemini

import (
	"fmt"
	"strings"
)

const (
	// DefaultBaseURL is the Generative Language API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// APIKeyHeader carries the credential on every request.
	APIKeyHeader = "x-goog-api-key"
)

// Default models per capability.
const (
	TextModel   = "gemini-2.5-flash-preview-09-2025"
	ImageModel  = "imagen-4.0-generate-001"
	SpeechModel = "gemini-2.5-flash-preview-tts"
)

// Models selects the model used for each capability.
type Models struct {
	Text   string
	Image  string
	Speech string
}

// DefaultModels returns the models the application ships with.
func DefaultModels() Models {
	return Models{Text: TextModel, Image: ImageModel, Speech: SpeechModel}
}

func (m Models) withDefaults() Models {
	defaults := DefaultModels()
	if m.Text == "" {
		m.Text = defaults.Text
	}
	if m.Image == "" {
		m.Image = defaults.Image
	}
	if m.Speech == "" {
		m.Speech = defaults.Speech
	}
	return m
}

// GenerateContentURL is the text and speech endpoint for model.
func GenerateContentURL(baseURL, model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(baseURL, "/"), model)
}

// PredictURL is the image endpoint for model.
func PredictURL(baseURL, model string) string {
	return fmt.Sprintf("%s/models/%s:predict", strings.TrimRight(baseURL, "/"), model)
}

// AuthHeaders returns the request headers carrying apiKey.
func AuthHeaders(apiKey string) map[string]string {
	return map[string]string{APIKeyHeader: apiKey}
}

// Voice is one of the service's prebuilt speech voices.
type Voice string

const (
	VoicePuck   Voice = "Puck"
	VoiceKore   Voice = "Kore"
	VoiceFenrir Voice = "Fenrir"
	VoiceAoede  Voice = "Aoede"

	DefaultVoice = VoiceKore
)

// Voices lists the voices offered to users, in display order.
func Voices() []Voice {
	return []Voice{VoicePuck, VoiceKore, VoiceFenrir, VoiceAoede}
}

// ParseVoice matches name case-insensitively against Voices.
func ParseVoice(name string) (Voice, bool) {
	for _, v := range Voices() {
		if strings.EqualFold(string(v), strings.TrimSpace(name)) {
			return v, true
		}
	}
	return "", false
}

// Tool is a built-in tool the caller can enable on a text request.
type Tool string

const (
	ToolGoogleSearch  Tool = "googleSearch"
	ToolURLContext    Tool = "urlContext"
	ToolCodeExecution Tool = "codeExecution"
)
