package gemini

import (
	"fmt"
	"strings"

	"github.com/pookanfai/studio/internal/utils"
)

// Role identifies the speaker of a turn in provider terms.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior exchange unit sent as context.
type Turn struct {
	Role Role
	Text string
}

// TextRequest describes a text generation call.
type TextRequest struct {
	Prompt       string
	Instructions string
	History      []Turn
	Tools        []Tool
}

// BuildTextRequest converts a TextRequest into the generateContent body.
// History turns come first in order, followed by the prompt as the final
// user turn.
func BuildTextRequest(request TextRequest) GenerateContentRequest {
	req := GenerateContentRequest{
		Contents: buildContents(request.History, request.Prompt),
	}

	if request.Instructions != "" {
		req.SystemInstruction = &SystemInstruction{
			Parts: []Part{{Text: request.Instructions}},
		}
	}

	if len(request.Tools) > 0 {
		req.Tools = buildTools(request.Tools)
	}

	return req
}

func buildContents(history []Turn, prompt string) []Content {
	contents := make([]Content, 0, len(history)+1)
	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		role := RoleUser
		if turn.Role == RoleModel {
			role = RoleModel
		}
		contents = append(contents, Content{Role: string(role), Parts: []Part{{Text: turn.Text}}})
	}

	final := Content{Parts: []Part{{Text: prompt}}}
	if len(contents) > 0 {
		final.Role = string(RoleUser)
	}
	return append(contents, final)
}

// buildTools maps caller-selected tools to declarations, dropping duplicates
// and names the service does not know.
func buildTools(tools []Tool) []ToolDeclaration {
	var result []ToolDeclaration
	seen := make(map[Tool]bool, len(tools))

	for _, t := range tools {
		if seen[t] {
			continue
		}
		seen[t] = true

		switch t {
		case ToolGoogleSearch:
			result = append(result, ToolDeclaration{GoogleSearch: &struct{}{}})
		case ToolURLContext:
			result = append(result, ToolDeclaration{URLContext: &struct{}{}})
		case ToolCodeExecution:
			result = append(result, ToolDeclaration{CodeExecution: &struct{}{}})
		}
	}
	return result
}

// BuildImageRequest builds the predict body for a single image.
func BuildImageRequest(prompt string) PredictRequest {
	return PredictRequest{
		Instances:  []PredictInstance{{Prompt: prompt}},
		Parameters: PredictParameters{SampleCount: 1},
	}
}

// BuildSpeechRequest builds the generateContent body for speech synthesis.
func BuildSpeechRequest(text string, voice Voice) GenerateContentRequest {
	if voice == "" {
		voice = DefaultVoice
	}
	return GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: text}}}},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &SpeechConfig{
				VoiceConfig: VoiceConfig{
					PrebuiltVoiceConfig: PrebuiltVoiceConfig{VoiceName: string(voice)},
				},
			},
		},
	}
}

// TextResult is the parsed outcome of a text generation call.
type TextResult struct {
	Text         string
	FinishReason string
	ModelVersion string
	Grounding    *Grounding
	Usage        *UsageMetadata
}

// ParseTextResponse extracts the first candidate's text. A response with no
// candidates or no text is ErrEmptyResult.
func ParseTextResponse(body []byte) (*TextResult, error) {
	resp, err := utils.ParseJSON[GenerateContentResponse](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResult, resp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("%w: no candidates", ErrEmptyResult)
	}

	candidate := resp.Candidates[0]
	result := &TextResult{
		FinishReason: candidate.FinishReason,
		ModelVersion: resp.ModelVersion,
		Usage:        resp.UsageMetadata,
	}

	if candidate.Content != nil {
		var text strings.Builder
		for _, p := range candidate.Content.Parts {
			if p.Thought {
				continue
			}
			text.WriteString(p.Text)
		}
		result.Text = text.String()
	}
	if result.Text == "" {
		return nil, fmt.Errorf("%w: candidate has no text (finish reason %q)", ErrEmptyResult, candidate.FinishReason)
	}

	if candidate.GroundingMetadata != nil {
		result.Grounding = mapGrounding(candidate.GroundingMetadata)
	}
	return result, nil
}

// Image is a decoded-ready generated image.
type Image struct {
	Base64   string
	MIMEType string
}

// DefaultImageMIMEType is assumed when a prediction does not name its type.
const DefaultImageMIMEType = "image/png"

// ParseImageResponse returns the first prediction carrying image bytes.
func ParseImageResponse(body []byte) (*Image, error) {
	resp, err := utils.ParseJSON[PredictResponse](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return nil, fmt.Errorf("%w: no predictions", ErrEmptyResult)
	}

	prediction := resp.Predictions[0]
	mimeType := prediction.MimeType
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}
	return &Image{Base64: prediction.BytesBase64Encoded, MIMEType: mimeType}, nil
}

// ParseSpeechResponse returns the inline audio of the first candidate part.
// Validating the mime type and the payload is left to the audio codec.
func ParseSpeechResponse(body []byte) (*InlineData, error) {
	resp, err := utils.ParseJSON[GenerateContentResponse](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrEmptyResult)
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0].InlineData == nil {
		return nil, fmt.Errorf("%w: no inline audio", ErrEmptyResult)
	}
	return content.Parts[0].InlineData, nil
}
