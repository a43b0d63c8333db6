package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/keel/internal/ui/output"
	"go.trai.ch/keel/internal/ui/style"
)

// PrettyHandler is a slog.Handler for terminal output. The first line of a
// message carries the level marker, its colour and the attributes; further
// lines (cause chains, drift diffs) are written unstyled below it.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	headline, rest, multiline := strings.Cut(r.Message, "\n")

	var color string
	switch {
	case r.Level >= slog.LevelError:
		headline = style.Cross + " " + headline
		color = string(style.Red)
	case r.Level >= slog.LevelWarn:
		headline = style.Warning + " " + headline
		color = string(style.Yellow)
	case strings.HasPrefix(headline, style.Check):
		color = string(style.Green)
	default:
		color = string(style.Slate)
	}

	parts := append([]string{headline}, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.formatAttr(attr))
		return true
	})

	var b strings.Builder
	b.WriteString(h.out.String(strings.Join(parts, " ")).Foreground(h.out.Color(color)).String())
	b.WriteByte('\n')
	if multiline {
		b.WriteString(rest)
		b.WriteByte('\n')
	}

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// Attributes keep the group prefix in effect when they were added.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = append(next.attrs, h.formatAttr(attr))
	}
	return next
}

// WithGroup returns a new Handler that nests later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  append([]string(nil), h.attrs...),
		prefix: h.prefix,
	}
}

func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	return h.prefix + attr.Key + "=" + attr.Value.Resolve().String()
}
