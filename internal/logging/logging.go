// Package logging builds the structured loggers used by the commands.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New creates a logger writing to stderr. When stderr is a terminal it uses
// slog.TextHandler for human-readable output; when it is piped or
// redirected (service managers, CI) it uses slog.JSONHandler.
func New(level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level)
}

// NewWriter creates a logger on w, text formatted when human is set.
func NewWriter(w io.Writer, human bool, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if human {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// ParseLevel maps a --log-level value onto a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
