package conversation

import (
	"testing"
	"time"
)

// TestManager_OnePerIdentity verifies identity mapping and independence.
func TestManager_OnePerIdentity(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManager(WithClock(func() time.Time { return fixed }))

	roleplay := m.Get(IdentityRoleplay)
	if m.Get(IdentityRoleplay) != roleplay {
		t.Fatal("expected the same conversation for the same identity")
	}
	assistant := m.Get(IdentityAssistant)
	if assistant == roleplay {
		t.Fatal("expected distinct conversations")
	}

	_ = roleplay.AppendUserTurn("hi")
	_, _ = roleplay.BeginPendingResponse()

	if err := assistant.AppendUserTurn("independent"); err != nil {
		t.Errorf("a pending roleplay response must not block the assistant: %v", err)
	}

	if events := roleplay.Events(); events[0].At != fixed {
		t.Errorf("expected injected clock, got %v", events[0].At)
	}

	identities := m.Identities()
	if len(identities) != 2 || identities[0] != IdentityAssistant || identities[1] != IdentityRoleplay {
		t.Errorf("unexpected identities %v", identities)
	}
	if roleplay.Identity() != IdentityRoleplay {
		t.Errorf("unexpected identity %q", roleplay.Identity())
	}
}
