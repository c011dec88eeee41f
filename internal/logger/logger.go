// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/iudanet/todosync/internal/config"
)

// New creates a *slog.Logger from cfg and sets it as the default logger.
//
// Format "json" produces structured JSON, anything else human-readable text
// with source info. When cfg.File is set, records are also written to a
// size-rotated file. The returned closer releases the file; it is a no-op
// when no file is configured.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg config.LogConfig, console io.Writer) (*slog.Logger, io.Closer) {
	var (
		out    = console
		closer io.Closer = nopCloser{}
	)

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(console, rotator)
		closer = rotator
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, closer
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
