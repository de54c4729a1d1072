// Package logging constructs slog loggers from explicit configuration.
//
// Components receive their logger as a constructor argument; there is no
// ambient process-wide logger state to configure on import.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the log sink, level, and format for a logger.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is "text" or "json". Empty means text.
	Format string
	// Output is the log sink. Nil means stderr.
	Output io.Writer
}

// New builds a logger from cfg. Unknown level or format values fall back
// to info/text rather than failing, so logging misconfiguration never
// blocks startup.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything. It is the default for
// library use and for tests that don't assert on log output.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level names a recognized log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// ValidFormat reports whether format names a recognized log format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", "text", "json":
		return true
	default:
		return false
	}
}

// String implements a human-readable description for diagnostics output.
func (c Config) String() string {
	level := c.Level
	if level == "" {
		level = "info"
	}
	format := c.Format
	if format == "" {
		format = "text"
	}
	return fmt.Sprintf("level=%s format=%s", level, format)
}
