// Package logger builds the *slog.Logger injected into every component.
// Records are rendered by charmbracelet/log and written to stderr and,
// optionally, to a size-rotated file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level  string
	Format string
	// File enables the rotating file sink when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns the root logger and a closer for the file sink.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit console writer.
func NewWithWriter(cfg Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	writer := console
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    valueOr(cfg.MaxSizeMB, 10),
			MaxBackups: valueOr(cfg.MaxBackups, 3),
			MaxAge:     valueOr(cfg.MaxAgeDays, 28),
			Compress:   true,
		}
		writer = io.MultiWriter(console, rotating)
		closer = rotating
	}

	level := charmlog.InfoLevel
	if cfg.Level != "" {
		parsed, err := charmlog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, nil, err
		}
		level = parsed
	}

	formatter := charmlog.TextFormatter
	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = charmlog.JSONFormatter
	case "logfmt":
		formatter = charmlog.LogfmtFormatter
	}

	handler := charmlog.NewWithOptions(writer, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
		Formatter:       formatter,
		Prefix:          "fitcourse",
	})

	return slog.New(handler), closer, nil
}

// Discard returns a logger that drops every record. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func valueOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
