// Package logging builds the process-wide slog.Logger. It supports a compact
// single-line format for terminals and a JSON format for log collection, with
// format and level taken from STUDIO_LOG_FORMAT and STUDIO_LOG_LEVEL.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output format of the handler.
type Format string

const (
	// FormatCompact prints one line per record:
	// 2026-10-15 10:40:35  INFO transport attempt failed -> {"status":503}
	FormatCompact Format = "compact"

	// FormatJSON prints one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat maps a format name to a Format, defaulting to FormatCompact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// ParseLevel parses DEBUG, INFO, WARN/WARNING or ERROR (case-insensitive).
// Unknown values yield INFO and an error describing the bad input.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Options configures New.
type Options struct {
	Format Format
	Level  slog.Level
	Output io.Writer
	Colors bool
}

// FromEnv reads STUDIO_LOG_FORMAT and STUDIO_LOG_LEVEL, falling back to
// LOG_FORMAT and LOG_LEVEL.
func FromEnv() Options {
	format := os.Getenv("STUDIO_LOG_FORMAT")
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	level := os.Getenv("STUDIO_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}

	parsed, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using INFO\n", err)
	}

	return Options{
		Format: ParseFormat(format),
		Level:  parsed,
		Output: os.Stderr,
	}
}

// New returns a logger writing through a Handler configured by opts.
func New(opts Options) *slog.Logger {
	return slog.New(NewHandler(opts))
}

// Discard returns a logger that drops every record. Tests and library
// defaults use it when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
