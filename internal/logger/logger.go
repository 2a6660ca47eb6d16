// Package logger builds the process-wide slog logger used by the
// boundary layers; the simulation core never logs.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

func (c Config) slogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
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

// New builds a logger writing to stderr so game output on stdout stays
// clean in headless mode.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.slogLevel()}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
