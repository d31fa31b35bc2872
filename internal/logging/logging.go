// Package logging builds the process slog.Logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// New returns a logger writing JSON records, or colored human-readable
// lines rendered by charmbracelet/log when format is "text".
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "text") {
		handler := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmLevel(level),
			ReportTimestamp: true,
		})
		return slog.New(handler)
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level >= slog.LevelError:
		return charmlog.ErrorLevel
	case level >= slog.LevelWarn:
		return charmlog.WarnLevel
	case level >= slog.LevelInfo:
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}
