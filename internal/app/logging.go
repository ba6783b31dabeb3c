package app

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger on w. Advisories are logged at Info and
// only appear when verbose; warnings always appear. Timestamps are dropped
// unless withTime is set (the watch log keeps them).
func NewLogger(w io.Writer, verbose, withTime bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if !withTime && len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
