package conversation

import (
	"slices"
	"sync"
	"time"
)

// Identity names a chat surface.
type Identity string

const (
	IdentityRoleplay  Identity = "character-roleplay"
	IdentityAssistant Identity = "assistant-chat"
)

// Manager hands out one Conversation per identity. Conversations are
// independent: nothing orders events across them.
type Manager struct {
	mu            sync.Mutex
	conversations map[Identity]*Conversation
	now           func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock sets the time source stamped on events.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager returns an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{conversations: make(map[Identity]*Conversation)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the conversation for identity, creating it on first use.
func (m *Manager) Get(identity Identity) *Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.conversations[identity]; ok {
		return c
	}
	c := newConversation(identity, m.now)
	m.conversations[identity] = c
	return c
}

// Identities lists the conversations created so far, sorted.
func (m *Manager) Identities() []Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Identity, 0, len(m.conversations))
	for identity := range m.conversations {
		out = append(out, identity)
	}
	slices.Sort(out)
	return out
}
