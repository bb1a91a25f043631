package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pookanfai/studio/core/audio"
	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/internal/logging"
)

// ErrNoPlayer is returned by Detect when none of the known players is on PATH.
var ErrNoPlayer = errors.New("player: no audio player found on PATH")

// Program is an external player invocation. The file path is appended after
// Args.
type Program struct {
	Name string
	Args []string
}

func (p Program) String() string {
	return strings.Join(append([]string{p.Name}, p.Args...), " ")
}

// KnownPrograms lists the players Detect looks for, in order of preference.
func KnownPrograms() []Program {
	return []Program{
		{Name: "afplay"},
		{Name: "paplay"},
		{Name: "aplay", Args: []string{"-q"}},
		{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	}
}

// Command plays a resource by running an external program on its file.
type Command struct {
	program Program
	path    string
	logger  *slog.Logger
}

var _ playback.Player = (*Command)(nil)

// Option configures a Command.
type Option func(*Command)

// WithLogger sets the logger for process failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Command) { c.logger = logger }
}

// NewCommand returns a player running program. The program is resolved on
// PATH now so a missing binary fails early.
func NewCommand(program Program, opts ...Option) (*Command, error) {
	path, err := exec.LookPath(program.Name)
	if err != nil {
		return nil, fmt.Errorf("player: %s: %w", program.Name, err)
	}
	c := &Command{program: program, path: path, logger: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Detect returns a Command for the first known program found on PATH.
func Detect(opts ...Option) (*Command, error) {
	for _, program := range KnownPrograms() {
		if c, err := NewCommand(program, opts...); err == nil {
			return c, nil
		}
	}
	return nil, ErrNoPlayer
}

// Program returns the program this player runs.
func (c *Command) Program() Program { return c.program }

// Play starts the program on the resource file. The process is not bound to
// ctx: playback outlives the request that started it and ends on completion
// or Stop.
func (c *Command) Play(ctx context.Context, resource *audio.Resource) (playback.Playback, error) {
	if resource == nil {
		return nil, playback.ErrNoAudio
	}
	if resource.Released() {
		return nil, audio.ErrReleased
	}

	args := append(append([]string(nil), c.program.Args...), resource.Path())
	cmd := exec.Command(c.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("player: start %s: %w", c.program.Name, err)
	}
	c.logger.DebugContext(ctx, "playback started",
		slog.String("program", c.program.Name),
		slog.String("resource", resource.ID()),
	)

	p := &process{cmd: cmd, done: make(chan error, 1)}
	go func() {
		err := cmd.Wait()
		if p.stopped() {
			err = nil
		} else if err != nil {
			msg := strings.TrimSpace(stderr.String())
			c.logger.Warn("playback failed",
				slog.String("program", c.program.Name),
				slog.String("stderr", msg),
				slog.String("error", err.Error()),
			)
			if msg != "" {
				err = fmt.Errorf("player: %s: %w: %s", c.program.Name, err, msg)
			} else {
				err = fmt.Errorf("player: %s: %w", c.program.Name, err)
			}
		}
		p.done <- err
	}()
	return p, nil
}

type process struct {
	cmd  *exec.Cmd
	done chan error

	mu   sync.Mutex
	stop bool
}

func (p *process) Done() <-chan error { return p.done }

// Stop kills the process. Done then reports nil.
func (p *process) Stop() error {
	p.mu.Lock()
	if p.stop {
		p.mu.Unlock()
		return nil
	}
	p.stop = true
	p.mu.Unlock()

	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("player: stop: %w", err)
	}
	return nil
}

func (p *process) stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop
}
