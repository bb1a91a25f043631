package studio

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/cloudwego/base64x"

	"github.com/pookanfai/studio/core/audio"
	"github.com/pookanfai/studio/core/conversation"
	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/internal/logging"
	"github.com/pookanfai/studio/internal/utils"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

// MaxSpeechChars is the longest text sent for synthesis, in characters.
const MaxSpeechChars = 2000

// Generator is the provider surface the facade needs. *gemini.Provider
// implements it.
type Generator interface {
	Configured() bool
	GenerateText(ctx context.Context, request gemini.TextRequest) (*gemini.TextResult, error)
	GenerateImage(ctx context.Context, prompt string) (*gemini.Image, error)
	SynthesizeSpeech(ctx context.Context, text string, voice gemini.Voice) (*gemini.InlineData, error)
}

var _ Generator = (*gemini.Provider)(nil)

// Studio is the generation facade.
type Studio struct {
	generator Generator
	library   *audio.Library
	logger    *slog.Logger
}

// Option configures a Studio.
type Option func(*Studio)

// WithLogger sets the facade logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) { s.logger = logger }
}

// New creates a Studio. Speech resources are materialized in library.
func New(generator Generator, library *audio.Library, opts ...Option) *Studio {
	s := &Studio{generator: generator, library: library}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Configured reports whether an API key is available.
func (s *Studio) Configured() bool {
	return s.generator != nil && s.generator.Configured()
}

// TextRequest describes one text generation. Tools are chosen by the caller;
// the facade never infers them from the prompt.
type TextRequest struct {
	Prompt       string
	Instructions string
	Tools        []gemini.Tool
	History      []conversation.Turn
}

// TextResult is the outcome of GenerateTextResult. Text is always
// displayable; Err records why it is a fallback message, if it is one.
type TextResult struct {
	Text      string
	Grounding *gemini.Grounding
	Err       error
}

// OK reports whether Text is a generated answer.
func (r TextResult) OK() bool { return r.Err == nil }

// GenerateText returns generated text or a localized fallback message. It
// never fails.
func (s *Studio) GenerateText(ctx context.Context, request TextRequest) string {
	return s.GenerateTextResult(ctx, request).Text
}

// GenerateTextResult is GenerateText with grounding and the underlying error.
func (s *Studio) GenerateTextResult(ctx context.Context, request TextRequest) TextResult {
	if !s.Configured() {
		return TextResult{Text: MsgNotConfigured, Err: ErrNotConfigured}
	}

	result, err := s.generator.GenerateText(ctx, gemini.TextRequest{
		Prompt:       request.Prompt,
		Instructions: request.Instructions,
		History:      providerTurns(request.History),
		Tools:        request.Tools,
	})
	switch {
	case err == nil:
		return TextResult{Text: result.Text, Grounding: result.Grounding}
	case errors.Is(err, gemini.ErrEmptyResult):
		s.logger.WarnContext(ctx, "text generation returned no content", slog.String("error", err.Error()))
		return TextResult{Text: MsgEmptyText, Err: err}
	case errors.Is(err, gemini.ErrMissingAPIKey):
		return TextResult{Text: MsgNotConfigured, Err: ErrNotConfigured}
	default:
		s.logger.ErrorContext(ctx, "LLM generation error", slog.String("error", err.Error()))
		return TextResult{Text: MsgConnectionError + failureDetail(err), Err: err}
	}
}

func providerTurns(turns []conversation.Turn) []gemini.Turn {
	if len(turns) == 0 {
		return nil
	}
	out := make([]gemini.Turn, 0, len(turns))
	for _, turn := range turns {
		role := gemini.RoleUser
		if turn.Speaker == conversation.SpeakerAgent {
			role = gemini.RoleModel
		}
		out = append(out, gemini.Turn{Role: role, Text: turn.Text})
	}
	return out
}

// ImageResult is the outcome of GenerateImage. On failure Success is false
// and Error holds a user-facing message.
type ImageResult struct {
	Success  bool
	Image    []byte
	MIMEType string
	Error    string
}

// GenerateImage generates one image for prompt. It never fails.
func (s *Studio) GenerateImage(ctx context.Context, prompt string) ImageResult {
	if !s.Configured() {
		return ImageResult{Error: MsgNotConfigured}
	}
	if strings.TrimSpace(prompt) == "" {
		return ImageResult{Error: MsgEmptyImagePrompt}
	}

	image, err := s.generator.GenerateImage(ctx, strings.TrimSpace(prompt))
	switch {
	case errors.Is(err, gemini.ErrEmptyResult):
		s.logger.WarnContext(ctx, "image generation returned no predictions")
		return ImageResult{Error: MsgEmptyImage}
	case errors.Is(err, gemini.ErrMissingAPIKey):
		return ImageResult{Error: MsgNotConfigured}
	case err != nil:
		s.logger.ErrorContext(ctx, "Image Generation Error", slog.String("error", err.Error()))
		return ImageResult{Error: failureDetail(err)}
	}

	data, err := base64x.StdEncoding.DecodeString(image.Base64)
	if err != nil || len(data) == 0 {
		s.logger.ErrorContext(ctx, "image payload is not valid base64")
		return ImageResult{Error: MsgEmptyImage}
	}
	return ImageResult{Success: true, Image: data, MIMEType: image.MIMEType}
}

// PrepareSpeechText cuts text to MaxSpeechChars characters, appending
// TruncationSuffix when it was cut. Whitespace counts toward the limit and is
// kept. It returns "" for blank text.
func PrepareSpeechText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if cut, truncated := utils.TruncateRunes(text, MaxSpeechChars); truncated {
		return cut + TruncationSuffix
	}
	return text
}

// SynthesizeSpeech returns a playable resource for text, or nil on any
// failure: missing key, blank text, transport failure, or a payload the
// codec rejects.
func (s *Studio) SynthesizeSpeech(ctx context.Context, text string, voice gemini.Voice) *audio.Resource {
	if !s.Configured() {
		return nil
	}
	prepared := PrepareSpeechText(text)
	if prepared == "" {
		return nil
	}

	data, err := s.generator.SynthesizeSpeech(ctx, prepared, voice)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error generating TTS", slog.String("error", err.Error()))
		return nil
	}

	resource, err := s.library.Decode(data.Data, data.MimeType)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error decoding TTS audio",
			slog.String("mime_type", data.MimeType),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return resource
}

// SpeechFunc adapts SynthesizeSpeech for a playback.Coordinator.
func (s *Studio) SpeechFunc(text string, voice gemini.Voice) playback.SynthesizeFunc {
	return func(ctx context.Context) (*audio.Resource, error) {
		if resource := s.SynthesizeSpeech(ctx, text, voice); resource != nil {
			return resource, nil
		}
		return nil, ErrSpeechFailed
	}
}
