package gemini

/*
	GENERATE CONTENT - REQUEST TYPES
*/

// GenerateContentRequest is the body of a models/{model}:generateContent call.
// Text and speech share it; speech sets GenerationConfig.SpeechConfig.
type GenerateContentRequest struct {
	Contents          []Content          `json:"contents"`
	SystemInstruction *SystemInstruction `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig  `json:"generationConfig,omitempty"`
	Tools             []ToolDeclaration  `json:"tools,omitempty"`
}

// SystemInstruction carries the persona or task instructions.
type SystemInstruction struct {
	Parts []Part `json:"parts"`
}

// Content is one turn: a role and its parts.
type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Part is a text or inline-data fragment of a turn.
type Part struct {
	Text       string      `json:"text,omitempty"`
	Thought    bool        `json:"thought,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is base64-encoded media (speech audio in responses).
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GenerationConfig holds the generation parameters this client sets.
type GenerationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"` // ["AUDIO"] for speech
	SpeechConfig       *SpeechConfig `json:"speechConfig,omitempty"`
}

// SpeechConfig selects the synthesis voice.
type SpeechConfig struct {
	VoiceConfig VoiceConfig `json:"voiceConfig"`
}

// VoiceConfig wraps the prebuilt voice selection.
type VoiceConfig struct {
	PrebuiltVoiceConfig PrebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

// PrebuiltVoiceConfig names one of the service's built-in voices.
type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// ToolDeclaration enables one built-in tool. Exactly one field is set.
type ToolDeclaration struct {
	GoogleSearch  *struct{} `json:"googleSearch,omitempty"`
	URLContext    *struct{} `json:"urlContext,omitempty"`
	CodeExecution *struct{} `json:"codeExecution,omitempty"`
}

/*
	GENERATE CONTENT - RESPONSE TYPES
*/

// GenerateContentResponse is the body returned by generateContent.
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content           *Content           `json:"content,omitempty"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GroundingMetadata describes the search results an answer was grounded on.
type GroundingMetadata struct {
	SearchEntryPoint *SearchEntryPoint `json:"searchEntryPoint,omitempty"`
	GroundingChunks  []GroundingChunk  `json:"groundingChunks,omitempty"`
	WebSearchQueries []string          `json:"webSearchQueries,omitempty"`
}

// SearchEntryPoint is the HTML search-suggestion widget that must be shown
// alongside grounded answers.
type SearchEntryPoint struct {
	RenderedContent string `json:"renderedContent,omitempty"`
}

// GroundingChunk is one retrieved source.
type GroundingChunk struct {
	Web *WebChunk `json:"web,omitempty"`
}

// WebChunk is a web page used for grounding.
type WebChunk struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

// PromptFeedback is set when the prompt itself was blocked.
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// UsageMetadata reports token counts.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount,omitempty"`
	CandidatesTokenCount int `json:"candidatesTokenCount,omitempty"`
	TotalTokenCount      int `json:"totalTokenCount,omitempty"`
}

/*
	PREDICT (IMAGE) - REQUEST/RESPONSE TYPES
*/

// PredictRequest is the body of a models/{model}:predict call.
type PredictRequest struct {
	Instances  []PredictInstance `json:"instances"`
	Parameters PredictParameters `json:"parameters"`
}

// PredictInstance carries the image prompt.
type PredictInstance struct {
	Prompt string `json:"prompt"`
}

// PredictParameters controls how many images are generated.
type PredictParameters struct {
	SampleCount int `json:"sampleCount"`
}

// PredictResponse is the body returned by predict.
type PredictResponse struct {
	Predictions []Prediction `json:"predictions,omitempty"`
}

// Prediction is one generated image.
type Prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded,omitempty"`
	MimeType           string `json:"mimeType,omitempty"`
}
