package segmented

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with collection-specific context.
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
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogGrow logs a capacity increase.
func (l *Logger) LogGrow(ctx context.Context, oldCap, newCap, reused, allocated int) {
	l.DebugContext(ctx, "list capacity grown",
		"old_capacity", oldCap,
		"new_capacity", newCap,
		"segments_reused", reused,
		"segments_allocated", allocated,
	)
}

// LogTrim logs a capacity reduction.
func (l *Logger) LogTrim(ctx context.Context, oldCap, newCap int) {
	l.DebugContext(ctx, "list capacity trimmed",
		"old_capacity", oldCap,
		"new_capacity", newCap,
	)
}

// LogSort logs a sort of a list range.
func (l *Logger) LogSort(ctx context.Context, count int, err error) {
	sl := l.WithCount(count)
	if err != nil {
		sl.ErrorContext(ctx, "sort failed", "error", err)
	} else {
		sl.DebugContext(ctx, "sort completed")
	}
}
