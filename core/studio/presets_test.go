package studio

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPresets_Catalogue(t *testing.T) {
	want := []string{"plot", "outline", "world", "refine", "names", "dialogue", "blurb", "editor"}

	all := Presets()
	if len(all) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("preset %d: expected %q, got %q", i, id, all[i].ID)
		}
		if all[i].Instructions == "" || all[i].Title == "" {
			t.Errorf("preset %q is missing instructions or title", id)
		}
	}

	all[0].ID = "mutated"
	if p, _ := LookupPreset("plot"); p.ID != "plot" {
		t.Error("Presets must return a copy")
	}
}

func TestPreset_Prompt(t *testing.T) {
	tests := []struct {
		id    string
		input string
		want  string
	}{
		{"plot", "มังกร", "Generate 3 plot ideas for a story with the following keywords: มังกร"},
		{"refine", "ฝนตก", `Refine this sentence into elegant Thai prose: "ฝนตก"`},
		{"editor", "บทที่ 1", "ช่วยวิจารณ์และตรวจสอบงานเขียนนี้: \n\nบทที่ 1"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, ok := LookupPreset(tt.id)
			if !ok {
				t.Fatalf("preset %q not found", tt.id)
			}
			if got := p.Prompt(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRunPreset(t *testing.T) {
	s, service := newTestStudio(t, "key", textReply("1. มังกรไฟ"))
	ctx := context.Background()

	if _, err := s.RunPreset(ctx, "nope", "x"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if got, err := s.RunPreset(ctx, "plot", "  "); got != MsgEmptyInput || !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected empty input message, got %q, %v", got, err)
	}
	if n := service.calls.Load(); n != 0 {
		t.Fatalf("expected no calls for rejected input, got %d", n)
	}

	got, err := s.RunPreset(ctx, "names", " ป่าหิมพานต์ ")
	if err != nil {
		t.Fatalf("RunPreset: %v", err)
	}
	if got != "1. มังกรไฟ" {
		t.Errorf("unexpected text %q", got)
	}

	body := service.lastBody(t)
	system := body["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
	if !strings.HasPrefix(system, "You are a naming specialist.") {
		t.Errorf("unexpected instructions %q", system)
	}
	prompt := body["contents"].([]any)[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
	if !strings.HasSuffix(prompt, "with the theme: ป่าหิมพานต์") {
		t.Errorf("unexpected prompt %q", prompt)
	}
}
