package commands

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pookanfai/studio/core/conversation"
	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/core/studio"
	"github.com/pookanfai/studio/internal/logging"
	"github.com/pookanfai/studio/providers/ai/gemini"
	"github.com/pookanfai/studio/providers/player"
)

func TestWantsSearch(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"ช่วยค้นหาตำนานพญานาค", true},
		{"ขอข้อมูลเรื่องอยุธยา", true},
		{"นิยายขายดีล่าสุด", true},
		{"ราคาหนังสือเท่าไหร่", true},
		{"ช่วยตั้งชื่อตัวละครหน่อย", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := wantsSearch(tt.text); got != tt.want {
			t.Errorf("wantsSearch(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey("AIzaSyABCD1234"); got != "**********1234" {
		t.Errorf("unexpected mask %q", got)
	}
	if got := maskKey("abc"); got != "***" {
		t.Errorf("unexpected mask %q", got)
	}
}

func TestFormatGrounding(t *testing.T) {
	if formatGrounding(nil) != "" {
		t.Error("expected empty output for nil grounding")
	}

	got := formatGrounding(&gemini.Grounding{
		Queries: []string{"ราคาทอง"},
		Sources: []gemini.Source{{Index: 0, URI: "https://example.com/gold", Title: "Gold"}},
	})
	if !strings.Contains(got, "[1] Gold - https://example.com/gold") {
		t.Errorf("missing source line in %q", got)
	}
	if !strings.Contains(got, "ราคาทอง") {
		t.Errorf("missing query in %q", got)
	}
}

func TestImageExtension(t *testing.T) {
	for mime, want := range map[string]string{"image/png": ".png", "image/jpeg": ".jpg", "": ".png"} {
		if got := imageExtension(mime); got != want {
			t.Errorf("imageExtension(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestLastAgentTurn(t *testing.T) {
	turns := []conversation.Turn{
		{Speaker: conversation.SpeakerUser, Text: "q1"},
		{Speaker: conversation.SpeakerAgent, Text: "a1"},
		{Speaker: conversation.SpeakerUser, Text: "q2"},
	}
	if got := lastAgentTurn(turns); got != "a1" {
		t.Errorf("expected a1, got %q", got)
	}
	if got := lastAgentTurn(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func newTestChatModel(t *testing.T) chatModel {
	t.Helper()
	s := studio.New(gemini.New(""), nil)
	chat := studio.NewChat(s, nil)
	if _, err := chat.StartRoleplay("ขุนแผน", "ทหารเอก"); err != nil {
		t.Fatal(err)
	}
	coordinator := playback.New(player.Null{})
	t.Cleanup(func() { coordinator.Close() })
	return newChatModel(context.Background(), chat, coordinator, make(chan playback.State), modeRoleplay, t.TempDir())
}

func TestChatModel_RendersGreeting(t *testing.T) {
	m := newTestChatModel(t)
	if !strings.Contains(m.View(), "เริ่มคุยกับ ขุนแผน ได้แล้ว") {
		t.Error("expected greeting in view")
	}
}

func TestChatModel_Keys(t *testing.T) {
	m := newTestChatModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(chatModel)
	if m.mode != modeAssistant {
		t.Fatalf("expected assistant mode, got %v", m.mode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(chatModel)
	if m.status != studio.MsgNothingToSpeak || !m.statusErr {
		t.Errorf("expected nothing-to-speak error, got %q", m.status)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(chatModel)
	if m.status != studio.MsgNoAudio {
		t.Errorf("expected no-audio error, got %q", m.status)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(chatModel)
	if cmd != nil || m.waiting[modeAssistant] {
		t.Error("blank input must not send")
	}
}

// TestChatModel_SendUnconfigured verifies a send without a key resolves to a
// reply message and leaves the conversation empty.
func TestChatModel_SendUnconfigured(t *testing.T) {
	m := newTestChatModel(t)
	m.input.SetValue("สวัสดี")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(chatModel)
	if cmd == nil || !m.waiting[modeRoleplay] {
		t.Fatal("expected a pending send")
	}
	if m.input.Value() != "" {
		t.Error("input must be cleared")
	}

	msg, ok := cmd().(replyMsg)
	if !ok {
		t.Fatal("expected replyMsg")
	}
	next, _ = m.Update(msg)
	m = next.(chatModel)
	if m.waiting[modeRoleplay] || !m.statusErr {
		t.Errorf("unexpected state waiting=%v status=%q", m.waiting[modeRoleplay], m.status)
	}
	if n := len(m.chat.Conversation(conversation.IdentityRoleplay).Events()); n != 0 {
		t.Errorf("expected no events, got %d", n)
	}
}

// TestOfferState verifies that a burst of state changes leaves only the
// newest one queued.
func TestOfferState(t *testing.T) {
	ch := make(chan playback.State, 1)
	for i := 0; i < 40; i++ {
		offerState(ch, playback.StateSynthesizing)
		offerState(ch, playback.StatePlaying)
	}
	offerState(ch, playback.StateIdle)

	if got := <-ch; got != playback.StateIdle {
		t.Errorf("expected idle, got %s", got)
	}
	select {
	case s := <-ch:
		t.Errorf("expected nothing else queued, got %s", s)
	default:
	}
}

// TestNewPlayer_Silent verifies that a silent app never starts an external
// player, whatever --player says.
func TestNewPlayer_Silent(t *testing.T) {
	saved := playerName
	t.Cleanup(func() { playerName = saved })

	a := &app{logger: logging.Discard()}
	for _, name := range []string{"auto", "aplay", "none"} {
		playerName = name
		if _, ok := a.newPlayer(true).(player.Null); !ok {
			t.Errorf("player %q: expected Null for a silent app", name)
		}
	}
}
