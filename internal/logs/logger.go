package logs

import (
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// New returns a logger writing JSON records to out at the given level. When
// errOut is non-nil, warnings and errors are also written there as text.
func New(level string, out, errOut io.Writer) *slog.Logger {
	handlers := []slog.Handler{
		slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLevel(level)}),
	}
	if errOut != nil {
		handlers = append(handlers, slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
