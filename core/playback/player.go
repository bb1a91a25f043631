package playback

import (
	"context"

	"github.com/pookanfai/studio/core/audio"
)

// Player starts playback of a resource. Implementations live outside the
// core; see providers/player.
type Player interface {
	Play(ctx context.Context, resource *audio.Resource) (Playback, error)
}

// Playback is one running playback.
type Playback interface {
	// Done yields exactly once when playback ends: nil on natural
	// completion or after Stop, an error on failure.
	Done() <-chan error

	// Stop ends playback early. It is safe to call more than once.
	Stop() error
}
