package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/mpy/internal/ui/output"
	"go.trai.ch/mpy/internal/ui/style"
)

// PrettyHandler is a slog.Handler writing one colored line per record.
// Warnings and errors carry an icon; attributes follow the message as
// faint key=value pairs.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or to stderr when
// w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{out: output.New(w, true), level: level}
}

// Enabled reports whether records at level are written.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := decoration(r.Level)

	msg := r.Message
	if icon != "" {
		msg = icon + " " + msg
	}
	line := h.out.String(msg).Foreground(color).String()

	attrs := append([]string(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.format(a)...)
		return true
	})
	if len(attrs) > 0 {
		line += " " + h.out.String(strings.Join(attrs, " ")).Faint().String()
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

// WithAttrs returns a handler that appends attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]string(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, h.format(a)...)
	}
	return &next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
// Nested groups are joined with dots.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func decoration(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Dot, termenv.RGBColor(string(style.Slate))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// format renders a as key=value pairs. Group attributes are flattened.
func (h *PrettyHandler) format(a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return nil
	}
	if a.Value.Kind() != slog.KindGroup {
		return []string{h.prefix + a.Key + "=" + a.Value.String()}
	}

	inner := *h
	if a.Key != "" {
		inner.prefix = h.prefix + a.Key + "."
	}
	var parts []string
	for _, ga := range a.Value.Group() {
		parts = append(parts, inner.format(ga)...)
	}
	return parts
}
