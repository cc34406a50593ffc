// Package logging configures the daemon's slog output: text or JSON on
// stderr, mirrored to the systemd journal when its socket is present. The
// journal is the modern home of what this daemon's predecessors sent to
// syslog.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the subset of *slog.Logger the daemon's components need;
// accepting it keeps call sites decoupled from the concrete type.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// New builds the root logger for the given level and format.
func New(level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	if journalAvailable() {
		h = multiHandler{h, NewJournalHandler(lvl)}
	}
	return slog.New(h)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
