package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pookanfai/studio/core/audio"
	"github.com/pookanfai/studio/internal/logging"
)

var (
	// ErrBusy rejects a request while another synthesis is in flight.
	ErrBusy = errors.New("playback: synthesis already in progress")

	// ErrNotPlaying is returned by Stop when nothing is playing.
	ErrNotPlaying = errors.New("playback: nothing is playing")

	// ErrNoAudio means synthesis finished without producing audio.
	ErrNoAudio = errors.New("playback: synthesis produced no audio")

	// ErrNoResource is returned by Download before any audio was produced.
	ErrNoResource = errors.New("playback: no audio to download")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("playback: coordinator closed")
)

// State is the coordinator's observable state.
type State int

const (
	StateIdle State = iota
	StateSynthesizing
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSynthesizing:
		return "synthesizing"
	case StatePlaying:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SynthesizeFunc produces the audio for one request. A nil resource with a
// nil error counts as ErrNoAudio.
type SynthesizeFunc func(ctx context.Context) (*audio.Resource, error)

// lease grants the right to finish one synthesis. It can be redeemed once.
type lease struct {
	redeemed atomic.Bool
}

func (l *lease) redeem() bool {
	return l.redeemed.CompareAndSwap(false, true)
}

// Handle is the single live playback.
type Handle struct {
	resource *audio.Resource
	playback Playback
	started  time.Time
}

// Resource is the audio being played.
func (h *Handle) Resource() *audio.Resource { return h.resource }

// release stops the playback. The resource itself is owned by the
// coordinator's "last" slot.
func (h *Handle) release() error {
	return h.playback.Stop()
}

// Coordinator owns the synthesis lease, the live playback handle and the
// last produced resource. It is safe for concurrent use.
type Coordinator struct {
	player   Player
	logger   *slog.Logger
	onChange func(State)

	mu     sync.Mutex
	lease  *lease
	handle *Handle
	last   *audio.Resource
	closed bool
	seq    uint64

	// notifyMu orders listener calls; delivered is the last seq handed out.
	notifyMu  sync.Mutex
	delivered uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithStateListener registers fn to be called after every state change,
// outside the coordinator's lock. Calls are serialized and never go back in
// time: a change that is overtaken by a newer one before it is delivered is
// skipped. fn must not call Speak, Stop or Close. UIs use it to enable or
// disable controls.
func WithStateListener(fn func(State)) Option {
	return func(c *Coordinator) { c.onChange = fn }
}

// New creates an idle Coordinator that plays through player.
func New(player Player, opts ...Option) *Coordinator {
	c := &Coordinator{player: player}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Coordinator) stateLocked() State {
	switch {
	case c.lease != nil:
		return StateSynthesizing
	case c.handle != nil:
		return StatePlaying
	default:
		return StateIdle
	}
}

// Speak runs synthesize and plays its result. It returns ErrBusy without
// calling synthesize if another synthesis is in flight. On success the
// previous playback is stopped and the previous resource released before the
// new one becomes current.
func (c *Coordinator) Speak(ctx context.Context, synthesize SynthesizeFunc) error {
	token, err := c.acquire()
	if err != nil {
		return err
	}

	resource, err := synthesize(ctx)
	if err == nil && resource == nil {
		err = ErrNoAudio
	}
	if err != nil {
		c.finish(token)
		c.logger.WarnContext(ctx, "speech synthesis failed", slog.String("error", err.Error()))
		return err
	}

	return c.install(ctx, token, resource)
}

func (c *Coordinator) acquire() (*lease, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.lease != nil {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	before := c.stateLocked()
	token := &lease{}
	c.lease = token
	seq := c.changedLocked(before)
	c.mu.Unlock()

	c.notify(seq, StateSynthesizing)
	return token, nil
}

// finish returns the lease without installing a resource.
func (c *Coordinator) finish(token *lease) {
	c.mu.Lock()
	if c.lease != token || !token.redeem() {
		c.mu.Unlock()
		return
	}
	c.lease = nil
	after := c.stateLocked()
	seq := c.changedLocked(StateSynthesizing)
	c.mu.Unlock()

	c.notify(seq, after)
}

func (c *Coordinator) install(ctx context.Context, token *lease, resource *audio.Resource) error {
	c.mu.Lock()
	if c.lease != token || !token.redeem() {
		c.mu.Unlock()
		c.releaseResource(resource)
		return ErrBusy
	}
	if c.closed {
		c.lease = nil
		c.mu.Unlock()
		c.releaseResource(resource)
		return ErrClosed
	}

	previous := c.handle
	previousResource := c.last
	c.handle = nil
	c.last = resource

	if previous != nil {
		if err := previous.release(); err != nil {
			c.logger.WarnContext(ctx, "stopping previous playback failed", slog.String("error", err.Error()))
		}
	}
	if previousResource != nil && previousResource != resource {
		c.releaseResource(previousResource)
	}

	playback, playErr := c.player.Play(ctx, resource)
	if playErr == nil {
		c.handle = &Handle{resource: resource, playback: playback, started: time.Now()}
		go c.watch(c.handle)
	}
	c.lease = nil
	after := c.stateLocked()
	seq := c.changedLocked(StateSynthesizing)
	c.mu.Unlock()

	c.notify(seq, after)

	if playErr != nil {
		c.logger.ErrorContext(ctx, "playback failed to start", slog.String("error", playErr.Error()))
		return fmt.Errorf("playback: starting player: %w", playErr)
	}
	c.logger.DebugContext(ctx, "playback started", slog.String("resource", resource.ID()))
	return nil
}

// watch clears the handle when its playback ends on its own.
func (c *Coordinator) watch(h *Handle) {
	err := <-h.playback.Done()

	c.mu.Lock()
	if c.handle != h {
		c.mu.Unlock()
		return
	}
	before := c.stateLocked()
	c.handle = nil
	after := c.stateLocked()
	seq := c.changedLocked(before)
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("playback ended with error", slog.String("error", err.Error()))
	} else {
		c.logger.Debug("playback finished", slog.Duration("elapsed", time.Since(h.started)))
	}
	c.notify(seq, after)
}

// Stop ends the live playback. It returns ErrNotPlaying when there is none.
// The resource stays available for download.
func (c *Coordinator) Stop() error {
	c.mu.Lock()
	h := c.handle
	if h == nil {
		c.mu.Unlock()
		return ErrNotPlaying
	}
	before := c.stateLocked()
	c.handle = nil
	after := c.stateLocked()
	seq := c.changedLocked(before)
	c.mu.Unlock()

	err := h.release()
	c.notify(seq, after)
	return err
}

// Current returns the live playback handle, or nil.
func (c *Coordinator) Current() *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// Last returns the most recent resource, or nil. It may have finished
// playing; it stays valid until replaced or Close.
func (c *Coordinator) Last() *audio.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Download saves the last resource into dir as a timestamped WAV file.
func (c *Coordinator) Download(dir string, now time.Time) (string, error) {
	resource := c.Last()
	if resource == nil {
		return "", ErrNoResource
	}
	return audio.Save(resource, dir, now)
}

// Close stops playback, releases the last resource and rejects further
// requests. An in-flight synthesis is not interrupted; its result is
// released when it arrives.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	before := c.stateLocked()
	h := c.handle
	last := c.last
	c.handle = nil
	c.last = nil
	after := c.stateLocked()
	seq := c.changedLocked(before)
	c.mu.Unlock()

	var errs []error
	if h != nil {
		errs = append(errs, h.release())
	}
	if last != nil {
		errs = append(errs, last.Release())
	}
	c.notify(seq, after)
	return errors.Join(errs...)
}

func (c *Coordinator) releaseResource(resource *audio.Resource) {
	if err := resource.Release(); err != nil {
		c.logger.Warn("releasing audio resource failed", slog.String("error", err.Error()))
	}
}

// changedLocked numbers a transition from before to the current state. It
// returns 0 when the state did not change.
func (c *Coordinator) changedLocked(before State) uint64 {
	if c.stateLocked() == before {
		return 0
	}
	c.seq++
	return c.seq
}

func (c *Coordinator) notify(seq uint64, state State) {
	if seq == 0 || c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if seq <= c.delivered {
		return
	}
	c.delivered = seq
	c.onChange(state)
}
