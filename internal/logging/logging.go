// Package logging builds the process-wide structured logger. The proof
// core never logs; the store, HTTP, watch, and command layers do.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler for the process logger. The zero value logs
// info and above as text on stderr.
type Config struct {
	Level   string    // debug, info, warn, error
	Format  string    // text or json
	Service string    // stamped on every record when set
	Writer  io.Writer // defaults to os.Stderr
}

// New builds a logger per the config. Unknown levels fall back to info,
// unknown formats to text.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// Component tags a child logger for one subsystem.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With("component", name)
}

// Discard returns a logger that drops everything. Test fixtures use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
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
