package tracktable

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with trajectory-pipeline context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithObjectID adds an object ID field to the logger.
func (l *Logger) WithObjectID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("object_id", id),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithSampleCount adds a sample-count field to the logger.
func (l *Logger) WithSampleCount(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("samples", n),
	}
}

// LogAssemble logs an assembly run.
func (l *Logger) LogAssemble(ctx context.Context, points, trajectories, skipped int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "assembly failed",
			"points", points,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "assembly completed",
			"points", points,
			"trajectories", trajectories,
			"skipped", skipped,
		)
	}
}

// LogExtract logs a feature-extraction run.
func (l *Logger) LogExtract(ctx context.Context, trajectories, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "feature extraction failed",
			"trajectories", trajectories,
			"samples", samples,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "feature extraction completed",
			"trajectories", trajectories,
			"samples", samples,
		)
	}
}

// LogQuery logs a nearest-neighbor query.
func (l *Logger) LogQuery(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"k", k,
			"results", resultsFound,
		)
	}
}
