package kdtree

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with index-specific helpers so build and query
// records carry consistent field names.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogBuild records a completed tree build.
func (l *Logger) LogBuild(points, dims, nodes, leaves int, ownership Ownership, elapsed time.Duration) {
	l.Debug("tree built",
		"points", points,
		"dims", dims,
		"nodes", nodes,
		"leaves", leaves,
		"ownership", ownership.String(),
		"elapsed", elapsed,
	)
}

// LogBuildFailed records a rejected rebuild. The previous tree, if any, is kept.
func (l *Logger) LogBuildFailed(points int, err error) {
	l.Warn("tree build rejected",
		"points", points,
		"error", err,
	)
}

// LogQuery records a query that failed its preconditions.
func (l *Logger) LogQuery(op string, err error) {
	l.Debug("query rejected",
		"op", op,
		"error", err,
	)
}
