package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the per-user directory under $HOME.
	DefaultBaseDir = ".pookanfai"
	// AppName is the application's subdirectory of DefaultBaseDir.
	AppName = "studio"
	// DefaultConfigFile is the credential file name.
	DefaultConfigFile = "config.yaml"
)

// ErrEmptyAPIKey rejects saving a blank key.
var ErrEmptyAPIKey = errors.New("config: API key is empty")

// File is the persisted client-local configuration. Every field is
// optional; environment variables take precedence over it.
type File struct {
	// APIKey is the Generative Language API key.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the API base URL.
	BaseURL string `yaml:"base_url,omitempty"`

	// Models overrides the model used per capability.
	Models *ModelsFile `yaml:"models,omitempty"`

	// Voice is the default speech voice.
	Voice string `yaml:"voice,omitempty"`

	// DownloadDir is where downloaded audio is written.
	DownloadDir string `yaml:"download_dir,omitempty"`

	// Timeout bounds a single HTTP attempt, in seconds.
	Timeout int `yaml:"timeout,omitempty"`
}

// ModelsFile names the model per capability.
type ModelsFile struct {
	Text   string `yaml:"text,omitempty"`
	Image  string `yaml:"image,omitempty"`
	Speech string `yaml:"speech,omitempty"`
}

// Store reads and writes the YAML config file.
type Store struct {
	path string
}

// DefaultPath returns ~/.pookanfai/studio/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, AppName, DefaultConfigFile), nil
}

// NewStore returns a store for path. An empty path means DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// Path returns the config file path.
func (s *Store) Path() string { return s.path }

// Load reads the file. A missing file is an empty configuration.
func (s *Store) Load() (*File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	file := &File{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", s.path, err)
	}
	return file, nil
}

// Save writes file with owner-only permissions. The key is a secret, so an
// existing file is tightened to 0600 as well.
func (s *Store) Save(file *File) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict config permissions: %w", err)
	}
	return nil
}

// SetAPIKey stores key, keeping the rest of the file.
func (s *Store) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}

	file, err := s.Load()
	if err != nil {
		return err
	}
	file.APIKey = key
	return s.Save(file)
}
