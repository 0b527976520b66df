package stitchgo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with stitchgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithBrand adds a brand field to the logger.
func (l *Logger) WithBrand(brand string) *Logger {
	return &Logger{
		Logger: l.Logger.With("brand", brand),
	}
}

// WithJob tags the logger with a recolor job name (typically the input path).
func (l *Logger) WithJob(job string) *Logger {
	return &Logger{
		Logger: l.Logger.With("job", job),
	}
}

// LogBuild logs palette index construction.
func (l *Logger) LogBuild(ctx context.Context, entries, height int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "palette build failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "palette built",
			"entries", entries,
			"height", height,
			"duration", duration,
		)
	}
}

// LogReduce logs a colour reduction step.
func (l *Logger) LogReduce(ctx context.Context, colors int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "color reduction failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "colors reduced",
			"colors", colors,
			"duration", duration,
		)
	}
}

// LogRecolor logs a recolor job.
func (l *Logger) LogRecolor(ctx context.Context, pixels, used int, hits, misses int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "recolor failed",
			"pixels", pixels,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "recolor completed",
			"pixels", pixels,
			"colors_used", used,
			"cache_hits", hits,
			"cache_misses", misses,
		)
	}
}
