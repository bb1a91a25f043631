package conversation

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrResponsePending is returned when a user turn or a second placeholder
	// is requested while a response is still pending.
	ErrResponsePending = errors.New("conversation: a response is pending")

	// ErrNoUserTurn is returned when a response is begun without an
	// unanswered user turn before it.
	ErrNoUserTurn = errors.New("conversation: no user turn awaiting a response")

	// ErrEmptyText is returned for a blank user turn.
	ErrEmptyText = errors.New("conversation: text is empty")
)

// Speaker is who produced an entry.
type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerAgent Speaker = "agent"
)

// State is the lifecycle state of an event.
type State int

const (
	// StateCommitted is a user turn.
	StateCommitted State = iota
	// StatePending is an agent response that has not arrived yet.
	StatePending
	// StateResolved is an agent response that has arrived.
	StateResolved
)

// Event is one entry of the log.
type Event struct {
	ID      string
	Speaker Speaker
	State   State
	Text    string
	At      time.Time
}

// Turn is one entry of the model-facing sequence.
type Turn struct {
	Speaker Speaker
	Text    string
}

// DisplayEntry is one entry of the user-facing transcript.
type DisplayEntry struct {
	ID      string
	Speaker Speaker
	Content string
	Pending bool
}

// Conversation is the state of one chat surface. It is safe for concurrent
// use.
type Conversation struct {
	identity Identity

	mu       sync.RWMutex
	greeting string
	events   []Event
	pending  int // index of the pending event, or -1
	now      func() time.Time
}

func newConversation(identity Identity, now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	return &Conversation{identity: identity, pending: -1, now: now}
}

// New returns an empty conversation for identity.
func New(identity Identity) *Conversation {
	return newConversation(identity, nil)
}

// Identity names the chat surface this conversation belongs to.
func (c *Conversation) Identity() Identity {
	return c.identity
}

// AppendUserTurn commits a user turn.
func (c *Conversation) AppendUserTurn(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendUserLocked(text)
}

// BeginPendingResponse appends the placeholder for the answer to the last
// user turn and returns its ID.
func (c *Conversation) BeginPendingResponse() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked()
}

// Submit commits a user turn and the placeholder for its answer in one step
// and returns the placeholder ID. When a response is already pending nothing
// is appended.
func (c *Conversation) Submit(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.appendUserLocked(text); err != nil {
		return "", err
	}
	return c.beginLocked()
}

func (c *Conversation) appendUserLocked(text string) error {
	if c.pending >= 0 {
		return ErrResponsePending
	}
	c.events = append(c.events, Event{
		ID:      uuid.NewString(),
		Speaker: SpeakerUser,
		State:   StateCommitted,
		Text:    text,
		At:      c.now(),
	})
	return nil
}

func (c *Conversation) beginLocked() (string, error) {
	if c.pending >= 0 {
		return "", ErrResponsePending
	}
	if len(c.events) == 0 || c.events[len(c.events)-1].Speaker != SpeakerUser {
		return "", ErrNoUserTurn
	}

	id := uuid.NewString()
	c.events = append(c.events, Event{
		ID:      id,
		Speaker: SpeakerAgent,
		State:   StatePending,
		At:      c.now(),
	})
	c.pending = len(c.events) - 1
	return id, nil
}

// ResolvePendingResponse replaces the placeholder with text. It reports
// whether a placeholder existed; without one it does nothing.
func (c *Conversation) ResolvePendingResponse(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked("", text)
}

// Resolve is ResolvePendingResponse restricted to the placeholder with the
// given ID. A response that arrives after Reset therefore cannot land in the
// new session.
func (c *Conversation) Resolve(id, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked(id, text)
}

func (c *Conversation) resolveLocked(id, text string) bool {
	if c.pending < 0 {
		return false
	}
	event := &c.events[c.pending]
	if id != "" && event.ID != id {
		return false
	}

	event.State = StateResolved
	event.Text = text
	event.At = c.now()
	c.pending = -1
	return true
}

// Pending reports whether a response is outstanding.
func (c *Conversation) Pending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending >= 0
}

// Reset clears the log, dropping any pending placeholder, and sets the
// greeting a UI shows above an empty transcript. The greeting is not a turn
// and is never sent to the model.
func (c *Conversation) Reset(greeting string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = nil
	c.pending = -1
	c.greeting = greeting
}

// Greeting returns the text set by the last Reset.
func (c *Conversation) Greeting() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.greeting
}

// Events returns a copy of the log.
func (c *Conversation) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Turns returns the committed exchange in order: user turns and resolved
// agent turns. A pending placeholder is not a turn.
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()

	turns := make([]Turn, 0, len(c.events))
	for _, event := range c.events {
		if event.State == StatePending {
			continue
		}
		turns = append(turns, Turn{Speaker: event.Speaker, Text: event.Text})
	}
	return turns
}

// Display returns the transcript in order. Entry i corresponds to Turns()[i]
// for every committed turn; the only extra entry is a trailing placeholder
// while a response is pending.
func (c *Conversation) Display() []DisplayEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]DisplayEntry, len(c.events))
	for i, event := range c.events {
		entries[i] = DisplayEntry{
			ID:      event.ID,
			Speaker: event.Speaker,
			Content: event.Text,
			Pending: event.State == StatePending,
		}
	}
	return entries
}
