package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler writing compact or JSON lines.
type Handler struct {
	format Format
	level  slog.Level
	colors bool
	attrs  []slog.Attr
	groups []string

	// mu is shared by all handlers derived via WithAttrs/WithGroup so their
	// writes to output never interleave.
	mu     *sync.Mutex
	output io.Writer
}

// NewHandler creates a Handler. A nil Output writes to stderr; colors are
// enabled automatically for compact output on a terminal.
func NewHandler(opts Options) *Handler {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Format == "" {
		opts.Format = FormatCompact
	}

	colors := opts.Colors
	if !colors && opts.Format == FormatCompact {
		if f, ok := opts.Output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}

	return &Handler{
		format: opts.Format,
		level:  opts.Level,
		colors: colors,
		mu:     &sync.Mutex{},
		output: opts.Output,
	}
}

// Enabled reports whether records at level are written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes r.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line []byte
	var err error

	switch h.format {
	case FormatJSON:
		line, err = h.formatJSON(r)
	default:
		line, err = h.formatCompact(r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(line)
	return err
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &clone
}

// WithGroup returns a Handler that prefixes subsequent keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *Handler) formatCompact(r slog.Record) ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')

	level := fmt.Sprintf("%5s", levelString(r.Level))
	if h.colors {
		buf = append(buf, colorForLevel(r.Level)...)
		buf = append(buf, level...)
		buf = append(buf, colorReset...)
	} else {
		buf = append(buf, level...)
	}
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	attrs := h.collect(r)
	if len(attrs) > 0 {
		encoded, err := json.Marshal(attrs)
		if err != nil {
			buf = append(buf, " [json-error]"...)
		} else {
			buf = append(buf, " -> "...)
			buf = append(buf, encoded...)
		}
	}

	return append(buf, '\n'), nil
}

func (h *Handler) formatJSON(r slog.Record) ([]byte, error) {
	data := h.collect(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

func (h *Handler) collect(r slog.Record) map[string]any {
	out := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		out[attr.Key] = attrValue(attr.Value)
	}
	var recordAttrs []slog.Attr
	r.Attrs(func(attr slog.Attr) bool {
		recordAttrs = append(recordAttrs, attr)
		return true
	})
	for _, attr := range h.qualify(recordAttrs) {
		out[attr.Key] = attrValue(attr.Value)
	}
	return out
}

// qualify prefixes keys with the handler's group path.
func (h *Handler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		out[i] = slog.Attr{Key: prefix + attr.Key, Value: attr.Value}
	}
	return out
}

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindGroup:
		group := v.Group()
		out := make(map[string]any, len(group))
		for _, attr := range group {
			out[attr.Key] = attrValue(attr.Value)
		}
		return out
	default:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	}
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
