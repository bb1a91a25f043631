package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pookanfai/studio/core/audio"
	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/core/studio"
	"github.com/pookanfai/studio/core/transport"
	"github.com/pookanfai/studio/internal/config"
	"github.com/pookanfai/studio/internal/logging"
	"github.com/pookanfai/studio/providers/ai/gemini"
	obsslog "github.com/pookanfai/studio/providers/observability/slog"
	"github.com/pookanfai/studio/providers/player"
)

// app is the wired object graph for one command run.
type app struct {
	cfg         config.Config
	store       *config.Store
	logger      *slog.Logger
	observer    *obsslog.Observer
	library     *audio.Library
	studio      *studio.Studio
	coordinator *playback.Coordinator

	closers []io.Closer
}

type appOptions struct {
	// quietLogs drops logs unless --log-file is set; the TUI owns the terminal.
	quietLogs bool

	// onState observes coordinator transitions.
	onState func(playback.State)

	// silent plays nothing; synthesized audio is only kept for download.
	silent bool
}

func loadConfig() (config.Config, *config.Store, error) {
	store, err := config.NewStore(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(config.WithStore(store), config.WithEnvFiles(envFile))
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, store, nil
}

func newApp(opts appOptions) (*app, error) {
	cfg, store, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, store: store}

	logOpts := cfg.Log()
	if verbose {
		logOpts.Level = slog.LevelDebug
	}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logOpts.Output = f
	case opts.quietLogs:
		logOpts.Output = io.Discard
	}
	a.logger = logging.New(logOpts)
	a.observer = obsslog.New(a.logger)

	a.library, err = audio.NewLibrary(audio.WithLibraryLogger(a.logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	tr := transport.New(
		transport.WithLogger(a.logger),
		transport.WithAttemptTimeout(cfg.AttemptTimeout()),
		transport.WithObserver(a.observer),
	)
	provider := gemini.New(cfg.APIKey(),
		gemini.WithBaseURL(cfg.BaseURL()),
		gemini.WithModels(cfg.Models()),
		gemini.WithTransport(tr),
		gemini.WithLogger(a.logger),
	)
	a.studio = studio.New(provider, a.library, studio.WithLogger(a.logger))

	coordinatorOpts := []playback.Option{playback.WithLogger(a.logger)}
	if opts.onState != nil {
		coordinatorOpts = append(coordinatorOpts, playback.WithStateListener(opts.onState))
	}
	a.coordinator = playback.New(a.newPlayer(opts.silent), coordinatorOpts...)
	return a, nil
}

func (a *app) newPlayer(silent bool) playback.Player {
	if silent {
		return player.Null{}
	}
	switch playerName {
	case "none":
		return player.Null{}
	case "", "auto":
		p, err := player.Detect(player.WithLogger(a.logger))
		if err != nil {
			a.logger.Warn("no audio player found, audio will only be downloadable")
			return player.Null{}
		}
		a.logger.Debug("using audio player", slog.String("program", p.Program().String()))
		return p
	default:
		p, err := player.NewCommand(player.Program{Name: playerName}, player.WithLogger(a.logger))
		if err != nil {
			a.logger.Warn("audio player unavailable", slog.String("error", err.Error()))
			return player.Null{}
		}
		return p
	}
}

// requireKey fails fast with the localized message when no key is set.
func (a *app) requireKey() error {
	if !a.studio.Configured() {
		return errors.New(studio.MsgNotConfigured + " (studio key set <key>)")
	}
	return nil
}

func (a *app) Close() error {
	if a.observer != nil {
		a.logStats()
	}

	var errs []error
	if a.coordinator != nil {
		errs = append(errs, a.coordinator.Close())
	}
	if a.library != nil {
		errs = append(errs, a.library.Close())
	}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// logStats writes the request metrics of this run at debug level.
func (a *app) logStats() {
	snap := a.observer.Snapshot()
	attrs := make([]any, 0, len(snap.Counters)+len(snap.Histograms))
	for _, name := range snap.Names() {
		if v, ok := snap.Counters[name]; ok {
			attrs = append(attrs, slog.Int64(name, v))
			continue
		}
		h := snap.Histograms[name]
		attrs = append(attrs, slog.Group(name,
			slog.Int64("count", h.Count),
			slog.Float64("sum_ms", h.Sum),
			slog.Float64("max_ms", h.Max),
		))
	}
	if len(attrs) > 0 {
		a.logger.Debug("request stats", attrs...)
	}
}
