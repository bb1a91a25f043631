package player

import (
	"context"

	"github.com/pookanfai/studio/core/audio"
	"github.com/pookanfai/studio/core/playback"
)

// Null is a player that plays nothing. Every playback is already finished.
type Null struct{}

var _ playback.Player = Null{}

func (Null) Play(_ context.Context, resource *audio.Resource) (playback.Playback, error) {
	if resource == nil {
		return nil, playback.ErrNoAudio
	}
	if resource.Released() {
		return nil, audio.ErrReleased
	}
	done := make(chan error, 1)
	done <- nil
	return finished(done), nil
}

type finished chan error

func (f finished) Done() <-chan error { return f }

func (finished) Stop() error { return nil }
