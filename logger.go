package pathnode

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with node-list specific helpers.
// This provides structured logging with consistent field names.
//
// Nothing is logged per node; only chunk growth, exhaustion, contract
// violations, dumps and release are reported.
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

// WithSearchID tags every record with the node list's search ID.
func (l *Logger) WithSearchID(id uuid.UUID) *Logger {
	return &Logger{
		Logger: l.Logger.With("search_id", id.String()),
	}
}

// LogChunkGrow logs the allocation of a new node chunk.
func (l *Logger) LogChunkGrow(ctx context.Context, chunks, chunkSize int) {
	l.DebugContext(ctx, "node chunk allocated",
		"chunks", chunks,
		"capacity", chunks*chunkSize,
	)
}

// LogExhausted logs a failed node allocation.
func (l *Logger) LogExhausted(ctx context.Context, total int, err error) {
	l.ErrorContext(ctx, "node allocation failed",
		"total", total,
		"error", err,
	)
}

// LogPrecondition logs a contract violation right before it panics.
func (l *Logger) LogPrecondition(ctx context.Context, err *PreconditionError) {
	l.ErrorContext(ctx, "node list precondition violated",
		"op", err.Op,
		"error", err.Err,
	)
}

// LogDump logs a diagnostic dump.
func (l *Logger) LogDump(ctx context.Context, nodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dump failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dump written",
			"nodes", nodes,
		)
	}
}

// LogRelease logs the release of a node list.
func (l *Logger) LogRelease(ctx context.Context, stats Stats) {
	l.DebugContext(ctx, "node list released",
		"total", stats.Total,
		"open", stats.Open,
		"closed", stats.Closed,
		"chunks", stats.Chunks,
		"bytes_reserved", stats.BytesReserved,
	)
}
