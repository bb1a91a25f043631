// Package config resolves the studio configuration once at startup.
//
// Sources, highest precedence first:
//
//  1. process environment
//  2. .env files (github.com/joho/godotenv)
//  3. the YAML file at ~/.pookanfai/studio/config.yaml
//  4. built-in defaults
//
// The result is an immutable [Config] that is passed explicitly to the
// constructors that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pookanfai/studio/internal/logging"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

// Environment variables.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvStudioKey   = "STUDIO_API_KEY"
	EnvBaseURL     = "STUDIO_BASE_URL"
	EnvVoice       = "STUDIO_VOICE"
	EnvDownloadDir = "STUDIO_DOWNLOAD_DIR"
	EnvTimeout     = "STUDIO_TIMEOUT"
)

// DefaultAttemptTimeout bounds one HTTP attempt when nothing else is set.
const DefaultAttemptTimeout = 60 * time.Second

// Source records where the API key came from.
type Source string

const (
	SourceNone Source = ""
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Config is the resolved configuration. The zero value is unconfigured.
type Config struct {
	apiKey         string
	keySource      Source
	baseURL        string
	models         gemini.Models
	voice          gemini.Voice
	downloadDir    string
	attemptTimeout time.Duration
	storePath      string
	log            logging.Options
}

func (c Config) APIKey() string                { return c.apiKey }
func (c Config) KeySource() Source             { return c.keySource }
func (c Config) Configured() bool              { return c.apiKey != "" }
func (c Config) BaseURL() string               { return c.baseURL }
func (c Config) Models() gemini.Models         { return c.models }
func (c Config) Voice() gemini.Voice           { return c.voice }
func (c Config) DownloadDir() string           { return c.downloadDir }
func (c Config) AttemptTimeout() time.Duration { return c.attemptTimeout }
func (c Config) StorePath() string             { return c.storePath }
func (c Config) Log() logging.Options          { return c.log }

// WithAPIKey returns a copy of c using key, as after `studio key set`.
func (c Config) WithAPIKey(key string, source Source) Config {
	c.apiKey = strings.TrimSpace(key)
	c.keySource = source
	if c.apiKey == "" {
		c.keySource = SourceNone
	}
	return c
}

type loadOptions struct {
	store    *Store
	envFiles []string
	lookup   func(string) (string, bool)
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithStore reads the YAML file from store instead of the default path.
func WithStore(store *Store) LoadOption {
	return func(o *loadOptions) { o.store = store }
}

// WithEnvFiles sets the .env files to read. Default: ".env". Missing files
// are skipped.
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) { o.envFiles = files }
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) LoadOption {
	return func(o *loadOptions) { o.lookup = lookup }
}

// Load resolves the configuration.
func Load(opts ...LoadOption) (Config, error) {
	o := loadOptions{envFiles: []string{".env"}, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		store, err := NewStore("")
		if err != nil {
			return Config{}, err
		}
		o.store = store
	}

	dotenv, err := readEnvFiles(o.envFiles)
	if err != nil {
		return Config{}, err
	}
	env := func(key string) string {
		if v, ok := o.lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	file, err := o.store.Load()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		storePath: o.store.Path(),
		baseURL:   firstNonEmpty(env(EnvBaseURL), file.BaseURL, gemini.DefaultBaseURL),
		models:    gemini.DefaultModels(),
		voice:     gemini.DefaultVoice,
		log:       logging.FromEnv(),
	}

	if key := firstNonEmpty(env(EnvAPIKey), env(EnvStudioKey)); key != "" {
		cfg.apiKey, cfg.keySource = key, SourceEnv
	} else if key := strings.TrimSpace(file.APIKey); key != "" {
		cfg.apiKey, cfg.keySource = key, SourceFile
	}

	if m := file.Models; m != nil {
		cfg.models.Text = firstNonEmpty(m.Text, cfg.models.Text)
		cfg.models.Image = firstNonEmpty(m.Image, cfg.models.Image)
		cfg.models.Speech = firstNonEmpty(m.Speech, cfg.models.Speech)
	}

	if name := firstNonEmpty(env(EnvVoice), file.Voice); name != "" {
		voice, ok := gemini.ParseVoice(name)
		if !ok {
			return Config{}, fmt.Errorf("config: unknown voice %q", name)
		}
		cfg.voice = voice
	}

	cfg.downloadDir = firstNonEmpty(env(EnvDownloadDir), file.DownloadDir)
	if cfg.downloadDir == "" {
		if cfg.downloadDir, err = os.Getwd(); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	cfg.attemptTimeout = DefaultAttemptTimeout
	if file.Timeout > 0 {
		cfg.attemptTimeout = time.Duration(file.Timeout) * time.Second
	}
	if raw := env(EnvTimeout); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("config: %s must be a positive number of seconds, got %q", EnvTimeout, raw)
		}
		cfg.attemptTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	merged := make(map[string]string)
	// Earlier files win, matching godotenv.Load.
	for i := len(files) - 1; i >= 0; i-- {
		values, err := godotenv.Read(files[i])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", filepath.Base(files[i]), err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
