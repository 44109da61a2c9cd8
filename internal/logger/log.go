// Package logger sets up the process-wide slog JSON logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"hydration-tracker/internal/config"

	"gopkg.in/lumberjack.v2"
)

type options struct {
	console io.Writer
	attrs   []any
}

type Option func(*options)

// WithConsole redirects console output. One-shot CLI commands pass
// os.Stderr so log lines stay out of their printed results.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// WithAttrs adds attributes to every record, e.g. the running command.
func WithAttrs(args ...any) Option {
	return func(o *options) { o.attrs = append(o.attrs, args...) }
}

func Init(cfg config.LogConfig, opts ...Option) {
	o := options{console: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, o.console)
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, o.console)
	}

	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	slog.SetDefault(slog.New(h).With(o.attrs...))
	Debug("logger.init", "level", cfg.Level, "file", cfg.File)
}

func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

func parseLevel(s string) slog.Level {
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
