package hammy

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hammy-specific context.
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

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithLength adds a sequence length field to the logger.
func (l *Logger) WithLength(length int) *Logger {
	return &Logger{
		Logger: l.Logger.With("length", length),
	}
}

// LogEncode logs an encode operation.
func (l *Logger) LogEncode(ctx context.Context, length int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"length", length,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"length", length,
		)
	}
}

// LogDistance logs a single pairwise comparison.
func (l *Logger) LogDistance(ctx context.Context, length, dist int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "distance failed",
			"length", length,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "distance completed",
			"length", length,
			"distance", dist,
		)
	}
}

// LogBatch logs a batch job such as a matrix or a neighbor scan.
func (l *Logger) LogBatch(ctx context.Context, op string, pairs int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"op", op,
			"pairs", pairs,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch completed",
			"op", op,
			"pairs", pairs,
			"duration", duration,
		)
	}
}

// LogSave logs a library save.
func (l *Logger) LogSave(ctx context.Context, name, segment string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "library save failed",
			"library", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "library save completed",
			"library", name,
			"segment", segment,
		)
	}
}

// LogLoad logs a library load.
func (l *Logger) LogLoad(ctx context.Context, name string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "library load failed",
			"library", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "library load completed",
			"library", name,
			"count", count,
		)
	}
}
