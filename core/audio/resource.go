package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/pookanfai/studio/internal/logging"
)

// ErrReleased is returned when a released resource is used.
var ErrReleased = errors.New("audio: resource released")

// Resource is a playable WAV file addressable by URL. It stays valid until
// Release is called; after that its URL is empty and its file is gone.
type Resource struct {
	id     string
	path   string
	wav    []byte
	header Header

	library *Library
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
}

// ID uniquely identifies the resource within the process.
func (r *Resource) ID() string { return r.id }

// URL returns a file:// URL for the WAV file, or "" once released.
func (r *Resource) URL() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ""
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(r.path)}).String()
}

// Path returns the filesystem path backing the URL.
func (r *Resource) Path() string { return r.path }

// Header describes the container format.
func (r *Resource) Header() Header { return r.header }

// Bytes returns a copy of the full WAV container.
func (r *Resource) Bytes() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, ErrReleased
	}
	return append([]byte(nil), r.wav...), nil
}

// Released reports whether Release has run.
func (r *Resource) Released() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Release revokes the URL and removes the backing file. It is safe to call
// more than once; only the first call has an effect.
func (r *Resource) Release() error {
	var err error
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.wav = nil
		r.mu.Unlock()

		if removeErr := os.Remove(r.path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = fmt.Errorf("audio: removing %s: %w", r.path, removeErr)
		}
		if r.library != nil {
			r.library.forget(r)
		}
	})
	return err
}

// Library materializes WAV containers as temporary files and tracks the
// resources that have not been released yet.
type Library struct {
	dir     string
	ownsDir bool
	logger  *slog.Logger

	mu   sync.Mutex
	live map[string]*Resource
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithDir stores files in dir instead of a fresh temporary directory.
func WithDir(dir string) LibraryOption {
	return func(l *Library) { l.dir = dir }
}

// WithLibraryLogger sets the logger used for release diagnostics.
func WithLibraryLogger(logger *slog.Logger) LibraryOption {
	return func(l *Library) { l.logger = logger }
}

// NewLibrary creates a Library. Without WithDir it creates its own temporary
// directory, which Close removes.
func NewLibrary(opts ...LibraryOption) (*Library, error) {
	l := &Library{live: make(map[string]*Resource)}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}

	if l.dir == "" {
		dir, err := os.MkdirTemp("", "pookanfai-voice-")
		if err != nil {
			return nil, fmt.Errorf("audio: creating library directory: %w", err)
		}
		l.dir = dir
		l.ownsDir = true
	} else if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio: creating library directory: %w", err)
	}
	return l, nil
}

// Decode runs the full pipeline: base64 PCM to Sample to WAV to Resource.
func (l *Library) Decode(payload, mimeType string) (*Resource, error) {
	sample, err := DecodeSample(payload, mimeType)
	if err != nil {
		return nil, err
	}
	return l.FromSample(sample)
}

// FromSample encodes sample and writes it to a new file.
func (l *Library) FromSample(sample *Sample) (*Resource, error) {
	wav := EncodeWAV(sample)
	header, err := ParseHeader(wav)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path := filepath.Join(l.dir, "voice-"+id+".wav")
	if err := os.WriteFile(path, wav, 0o600); err != nil {
		return nil, fmt.Errorf("audio: writing %s: %w", path, err)
	}

	resource := &Resource{id: id, path: path, wav: wav, header: header, library: l}

	l.mu.Lock()
	l.live[id] = resource
	l.mu.Unlock()

	l.logger.Debug("audio resource created",
		slog.String("id", id),
		slog.Int("sample_rate", header.SampleRate),
		slog.Int("data_bytes", header.DataSize),
	)
	return resource, nil
}

// Live returns the number of resources not yet released.
func (l *Library) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Dir is the directory holding the library's files.
func (l *Library) Dir() string { return l.dir }

// Close releases every live resource and removes the directory if the
// library created it.
func (l *Library) Close() error {
	l.mu.Lock()
	pending := make([]*Resource, 0, len(l.live))
	for _, r := range l.live {
		pending = append(pending, r)
	}
	l.mu.Unlock()

	var errs []error
	for _, r := range pending {
		if err := r.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	if l.ownsDir {
		if err := os.RemoveAll(l.dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Library) forget(r *Resource) {
	l.mu.Lock()
	delete(l.live, r.id)
	l.mu.Unlock()
	l.logger.Debug("audio resource released", slog.String("id", r.id))
}
