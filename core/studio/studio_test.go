package studio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pookanfai/studio/core/audio"
	"github.com/pookanfai/studio/core/transport"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

func noSleep(context.Context, time.Duration) error { return nil }

// fakeService is a scripted Generative Language endpoint. It records every
// request body it receives.
type fakeService struct {
	calls atomic.Int32

	mu     sync.Mutex
	bodies []map[string]any

	handler http.HandlerFunc
}

func (f *fakeService) lastBody(t *testing.T) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		t.Fatal("no request recorded")
	}
	return f.bodies[len(f.bodies)-1]
}

func newTestStudio(t *testing.T, apiKey string, handler http.HandlerFunc) (*Studio, *fakeService) {
	t.Helper()
	service := &fakeService{handler: handler}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		service.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		service.mu.Lock()
		service.bodies = append(service.bodies, body)
		service.mu.Unlock()
		service.handler(w, r)
	}))
	t.Cleanup(server.Close)

	tr := transport.New(
		transport.WithHTTPClient(server.Client()),
		transport.WithRetry(transport.RetryConfig{Sleep: noSleep}),
	)
	provider := gemini.New(apiKey, gemini.WithBaseURL(server.URL), gemini.WithTransport(tr))

	library, err := audio.NewLibrary(audio.WithDir(t.TempDir()))
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	t.Cleanup(func() { library.Close() })

	return New(provider, library), service
}

func textReply(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			}},
		})
	}
}

func speechReply(pcm []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{
						"inlineData": map[string]any{
							"mimeType": "audio/L16;codec=pcm;rate=24000",
							"data":     base64.StdEncoding.EncodeToString(pcm),
						},
					}},
				},
			}},
		})
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, code)
	}
}

// TestNotConfigured_NoNetworkCalls verifies that every capability short
// circuits without a key.
func TestNotConfigured_NoNetworkCalls(t *testing.T) {
	s, service := newTestStudio(t, "", textReply("unused"))
	ctx := context.Background()

	if s.Configured() {
		t.Fatal("expected unconfigured studio")
	}

	result := s.GenerateTextResult(ctx, TextRequest{Prompt: "hello"})
	if result.Text != MsgNotConfigured || !errors.Is(result.Err, ErrNotConfigured) {
		t.Errorf("unexpected text result %+v", result)
	}
	if image := s.GenerateImage(ctx, "a cat"); image.Success || image.Error != MsgNotConfigured {
		t.Errorf("unexpected image result %+v", image)
	}
	if resource := s.SynthesizeSpeech(ctx, "hello", gemini.VoiceKore); resource != nil {
		t.Error("expected nil resource")
	}
	if got, err := s.RunPreset(ctx, "plot", "dragons"); got != MsgNotConfigured || !errors.Is(err, ErrNotConfigured) {
		t.Errorf("unexpected preset result %q, %v", got, err)
	}

	if n := service.calls.Load(); n != 0 {
		t.Errorf("expected zero network calls, got %d", n)
	}
}

func TestGenerateText_Success(t *testing.T) {
	s, service := newTestStudio(t, "key", textReply("สวัสดี"))

	got := s.GenerateText(context.Background(), TextRequest{
		Prompt:       "greet me",
		Instructions: WriterInstructions,
		Tools:        []gemini.Tool{gemini.ToolGoogleSearch},
	})
	if got != "สวัสดี" {
		t.Errorf("expected generated text, got %q", got)
	}

	body := service.lastBody(t)
	if _, ok := body["tools"]; !ok {
		t.Error("expected tools in payload")
	}
	system, _ := body["systemInstruction"].(map[string]any)
	if system == nil {
		t.Fatal("expected systemInstruction in payload")
	}
}

// TestGenerateText_TransportFailure verifies the apology message carries the
// final HTTP status after all attempts.
func TestGenerateText_TransportFailure(t *testing.T) {
	s, service := newTestStudio(t, "key", status(http.StatusInternalServerError))

	result := s.GenerateTextResult(context.Background(), TextRequest{Prompt: "hi"})
	if !strings.HasPrefix(result.Text, MsgConnectionError) {
		t.Errorf("expected apology prefix, got %q", result.Text)
	}
	if !strings.Contains(result.Text, "HTTP error! status: 500") {
		t.Errorf("expected status in message, got %q", result.Text)
	}
	if !errors.Is(result.Err, transport.ErrRetryExhausted) {
		t.Errorf("expected ErrRetryExhausted, got %v", result.Err)
	}
	if n := service.calls.Load(); n != transport.DefaultMaxAttempts {
		t.Errorf("expected %d attempts, got %d", transport.DefaultMaxAttempts, n)
	}
}

func TestGenerateText_EmptyCandidates(t *testing.T) {
	s, _ := newTestStudio(t, "key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	result := s.GenerateTextResult(context.Background(), TextRequest{Prompt: "hi"})
	if result.Text != MsgEmptyText {
		t.Errorf("expected %q, got %q", MsgEmptyText, result.Text)
	}
	if !errors.Is(result.Err, ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult, got %v", result.Err)
	}
	if result.OK() {
		t.Error("expected OK() to be false")
	}
}

func TestGenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantSuccess bool
		wantError   string
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasSuffix(r.URL.Path, ":predict") {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"` + base64.StdEncoding.EncodeToString(png) + `","mimeType":"image/png"}]}`))
			},
			wantSuccess: true,
		},
		{
			name: "empty predictions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"predictions":[]}`))
			},
			wantError: MsgEmptyImage,
		},
		{
			name:      "transport failure",
			handler:   status(http.StatusBadRequest),
			wantError: "HTTP error! status: 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStudio(t, "key", tt.handler)
			result := s.GenerateImage(context.Background(), "a lantern festival")

			if result.Success != tt.wantSuccess {
				t.Fatalf("expected success=%v, got %+v", tt.wantSuccess, result)
			}
			if tt.wantSuccess {
				if string(result.Image) != string(png) || result.MIMEType != "image/png" {
					t.Errorf("unexpected image %v %q", result.Image, result.MIMEType)
				}
				return
			}
			if result.Error == "" || !strings.Contains(result.Error, tt.wantError) {
				t.Errorf("expected error containing %q, got %q", tt.wantError, result.Error)
			}
		})
	}
}

func TestPrepareSpeechText(t *testing.T) {
	long := strings.Repeat("ก", 3000)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"blank", "  \n ", ""},
		{"short keeps whitespace", " สวัสดี ", " สวัสดี "},
		{"exact limit", strings.Repeat("a", MaxSpeechChars), strings.Repeat("a", MaxSpeechChars)},
		{"long", long, strings.Repeat("ก", MaxSpeechChars) + TruncationSuffix},
		{"leading whitespace counts", "   " + long, "   " + strings.Repeat("ก", MaxSpeechChars-3) + TruncationSuffix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrepareSpeechText(tt.in); got != tt.want {
				t.Errorf("expected %d runes (%q...), got %d (%q...)",
					utf8.RuneCountInString(tt.want), prefix(tt.want), utf8.RuneCountInString(got), prefix(got))
			}
		})
	}
}

func prefix(s string) string {
	r := []rune(s)
	if len(r) > 8 {
		r = r[:8]
	}
	return string(r)
}

// TestSynthesizeSpeech_TruncatesRequest verifies the text sent for a 3000
// character input is exactly 2000 characters plus the suffix.
func TestSynthesizeSpeech_TruncatesRequest(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	s, service := newTestStudio(t, "key", speechReply(pcm))

	resource := s.SynthesizeSpeech(context.Background(), strings.Repeat("x", 3000), gemini.VoicePuck)
	if resource == nil {
		t.Fatal("expected a resource")
	}
	defer resource.Release()

	body := service.lastBody(t)
	contents := body["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	sent := parts[0].(map[string]any)["text"].(string)

	want := strings.Repeat("x", MaxSpeechChars) + TruncationSuffix
	if sent != want {
		t.Errorf("expected %d chars sent, got %d", utf8.RuneCountInString(want), utf8.RuneCountInString(sent))
	}

	data, err := resource.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != audio.HeaderSize+len(pcm) {
		t.Errorf("expected %d bytes, got %d", audio.HeaderSize+len(pcm), len(data))
	}
	if header := resource.Header(); header.SampleRate != 24000 {
		t.Errorf("expected 24000 Hz, got %d", header.SampleRate)
	}
}

func TestSynthesizeSpeech_Failures(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		handler http.HandlerFunc
	}{
		{"blank text", "   ", speechReply([]byte{0, 0})},
		{"transport failure", "hello", status(http.StatusTooManyRequests)},
		{"odd length audio", "hello", speechReply([]byte{1, 2, 3})},
		{"no candidates", "hello", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStudio(t, "key", tt.handler)
			if resource := s.SynthesizeSpeech(context.Background(), tt.text, gemini.VoiceKore); resource != nil {
				t.Errorf("expected nil resource, got %s", resource.ID())
			}
			if live := s.library.Live(); live != 0 {
				t.Errorf("expected no live resources, got %d", live)
			}
		})
	}
}

func TestSpeechFunc(t *testing.T) {
	s, _ := newTestStudio(t, "key", status(http.StatusInternalServerError))

	_, err := s.SpeechFunc("hello", gemini.VoiceKore)(context.Background())
	if !errors.Is(err, ErrSpeechFailed) {
		t.Errorf("expected ErrSpeechFailed, got %v", err)
	}
}
