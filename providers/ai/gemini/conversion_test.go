package gemini

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestBuildTextRequest_NoHistory verifies the single-turn payload shape.
func TestBuildTextRequest_NoHistory(t *testing.T) {
	body, err := json.Marshal(BuildTextRequest(TextRequest{Prompt: "hello", Instructions: "sys"}))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"contents":[{"parts":[{"text":"hello"}]}],"systemInstruction":{"parts":[{"text":"sys"}]}}`
	if string(body) != want {
		t.Errorf("unexpected payload\n got: %s\nwant: %s", body, want)
	}
}

// TestBuildTextRequest_History verifies turn order and role mapping.
func TestBuildTextRequest_History(t *testing.T) {
	req := BuildTextRequest(TextRequest{
		Prompt: "third",
		History: []Turn{
			{Role: RoleUser, Text: "first"},
			{Role: RoleModel, Text: "reply"},
			{Role: RoleModel, Text: ""},
		},
	})

	if len(req.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(req.Contents))
	}
	wantRoles := []string{"user", "model", "user"}
	wantTexts := []string{"first", "reply", "third"}
	for i := range wantRoles {
		if req.Contents[i].Role != wantRoles[i] || req.Contents[i].Parts[0].Text != wantTexts[i] {
			t.Errorf("content %d: got %+v", i, req.Contents[i])
		}
	}
	if req.SystemInstruction != nil {
		t.Error("expected no system instruction")
	}
}

// TestBuildTools verifies mapping, deduplication and unknown names.
func TestBuildTools(t *testing.T) {
	tools := buildTools([]Tool{ToolGoogleSearch, "bogus", ToolURLContext, ToolGoogleSearch, ToolCodeExecution})
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	if tools[0].GoogleSearch == nil || tools[1].URLContext == nil || tools[2].CodeExecution == nil {
		t.Errorf("unexpected tools %+v", tools)
	}

	body, _ := json.Marshal(tools[0])
	if string(body) != `{"googleSearch":{}}` {
		t.Errorf("unexpected tool JSON %s", body)
	}
}

// TestBuildImageRequest verifies the predict payload.
func TestBuildImageRequest(t *testing.T) {
	body, _ := json.Marshal(BuildImageRequest("cat"))
	want := `{"instances":[{"prompt":"cat"}],"parameters":{"sampleCount":1}}`
	if string(body) != want {
		t.Errorf("got %s, want %s", body, want)
	}
}

// TestBuildSpeechRequest verifies the speech payload and default voice.
func TestBuildSpeechRequest(t *testing.T) {
	body, _ := json.Marshal(BuildSpeechRequest("พูด", ""))
	want := `{"contents":[{"parts":[{"text":"พูด"}]}],"generationConfig":{"responseModalities":["AUDIO"],"speechConfig":{"voiceConfig":{"prebuiltVoiceConfig":{"voiceName":"Kore"}}}}}`
	if string(body) != want {
		t.Errorf("got %s\nwant %s", body, want)
	}
}

// TestParseTextResponse_SkipsThoughts verifies only answer parts are joined.
func TestParseTextResponse_SkipsThoughts(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"thinking","thought":true},{"text":"Hello "},{"text":"world"}]}}]}`)
	result, err := ParseTextResponse(body)
	if err != nil {
		t.Fatal(err)
	}
	if result.Text != "Hello world" {
		t.Errorf("unexpected text %q", result.Text)
	}
	if result.Grounding != nil {
		t.Error("expected no grounding")
	}
}

// TestParseResponses_Empty verifies that empty answers are ErrEmptyResult.
func TestParseResponses_Empty(t *testing.T) {
	if _, err := ParseTextResponse([]byte(`{"candidates":[]}`)); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("text: expected ErrEmptyResult, got %v", err)
	}
	if _, err := ParseTextResponse([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`)); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("text parts: expected ErrEmptyResult, got %v", err)
	}
	if _, err := ParseImageResponse([]byte(`{"predictions":[]}`)); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("image: expected ErrEmptyResult, got %v", err)
	}
	if _, err := ParseImageResponse([]byte(`{}`)); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("image without field: expected ErrEmptyResult, got %v", err)
	}
	if _, err := ParseSpeechResponse([]byte(`{"candidates":[{"content":{"parts":[{"text":"no audio"}]}}]}`)); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("speech: expected ErrEmptyResult, got %v", err)
	}
}

// TestParseImageResponse_DefaultMIMEType verifies the png fallback.
func TestParseImageResponse_DefaultMIMEType(t *testing.T) {
	image, err := ParseImageResponse([]byte(`{"predictions":[{"bytesBase64Encoded":"AAAA"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if image.MIMEType != DefaultImageMIMEType {
		t.Errorf("expected %s, got %s", DefaultImageMIMEType, image.MIMEType)
	}
}

// TestParseVoice verifies case-insensitive lookup.
func TestParseVoice(t *testing.T) {
	if v, ok := ParseVoice(" fenrir "); !ok || v != VoiceFenrir {
		t.Errorf("expected Fenrir, got %q %v", v, ok)
	}
	if _, ok := ParseVoice("nobody"); ok {
		t.Error("expected unknown voice to fail")
	}
}

// TestEndpointURLs verifies endpoint construction.
func TestEndpointURLs(t *testing.T) {
	if got := GenerateContentURL(DefaultBaseURL+"/", TextModel); got != "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent" {
		t.Errorf("unexpected URL %s", got)
	}
	if got := PredictURL(DefaultBaseURL, ImageModel); got != "https://generativelanguage.googleapis.com/v1beta/models/imagen-4.0-generate-001:predict" {
		t.Errorf("unexpected URL %s", got)
	}
}
