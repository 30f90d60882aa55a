// Package log provides the process-wide structured logger used across the
// compiler's phases. It wraps log/slog with a section filter so that
// verbose per-phase tracing (type checking, TAC construction, CFG
// analysis, LLVM emission) can be enabled independently of warnings and
// errors, which always pass through.
package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// enabledSections lists the "section" attribute values whose Debug/Info
// records are printed. Warn and above are never filtered.
var enabledSections = []string{
	"driver",
}

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     slog.LevelDebug,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var levelVar = new(slog.LevelVar)

var DefaultLogger = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

// SetLevel sets the minimum level printed by DefaultLogger, regardless of
// section filtering.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

func init() {
	levelVar.Set(slog.LevelWarn)
}

// EnableSection adds a section prefix to the debug/info allowlist.
func EnableSection(section string) {
	if !slices.Contains(enabledSections, section) {
		enabledSections = append(enabledSections, section)
	}
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= levelVar.Level() && f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	// first filter out records which do not match enabledSections
	wantSection := slices.ContainsFunc(f.sections, func(s string) bool {
		return slices.ContainsFunc(enabledSections, func(section string) bool {
			return strings.HasPrefix(s, section)
		})
	})
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && slices.ContainsFunc(enabledSections, func(section string) bool {
			return strings.HasPrefix(attr.Value.String(), section)
		})
		// iterate as long as we have not found our section
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var newAttrs []slog.Attr
	var sections []string

	// keep the section attribute in filteringHandler
	for _, attr := range attrs {
		if attr.Key == "section" {
			sections = append(sections, attr.Value.String())
		} else {
			newAttrs = append(newAttrs, attr)
		}
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
