// Package logging builds the structured logger shared by the binary and the
// session. Records go to a writer (stderr in plain mode) or, when a file is
// configured, to a size-rotated log file so the terminal UI keeps the screen.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration. It is parsed from ASHAETHER_LOG_*
// environment variables by the config package.
type Config struct {
	Level      slog.Level `env:"LEVEL" envDefault:"INFO"`
	Format     string     `env:"FORMAT" envDefault:"text"`
	File       string     `env:"FILE"`
	MaxSizeMB  int        `env:"FILE_MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int        `env:"FILE_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int        `env:"FILE_MAX_AGE_DAYS" envDefault:"30"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Level:      slog.LevelInfo,
		Format:     "text",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}
}

// Setup builds a logger from cfg. Output goes to the rotating file when
// cfg.File is set and to w otherwise. The returned closer releases the file
// and is safe to call when there is none.
func Setup(cfg Config, w io.Writer) (*slog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w, closer = file, file
	}
	if w == nil {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closer
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithSession adds the session id to every record.
func WithSession(logger *slog.Logger, id uuid.UUID) *slog.Logger {
	return logger.With("session_id", id.String())
}

// WithError adds an error to the logger context.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
