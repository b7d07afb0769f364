package symtab

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is a slog.Logger with one helper per event the package reports.
// Builds and decodes log at Debug, failed decodes at Warn, overflow and
// failed snapshot I/O at Error.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text to stderr at Info.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger logs human-readable records at level and above to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger logs one JSON object per record at level and above to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger returns a Logger that drops every record.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// LogBuild records a builder frozen into a resolver.
func (l *Logger) LogBuild(symbols, arenaBytes int, elapsed time.Duration) {
	l.LogAttrs(context.Background(), slog.LevelDebug, "symbol table built",
		slog.Int("symbols", symbols),
		slog.Int("arena_bytes", arenaBytes),
		slog.Duration("elapsed", elapsed),
	)
}

// LogDecode records a string table decoded from format.
func (l *Logger) LogDecode(format string, entries int, err error) {
	attrs := []slog.Attr{slog.String("format", format), slog.Int("entries", entries)}
	if err != nil {
		l.LogAttrs(context.Background(), slog.LevelWarn, "symbol table decode failed",
			append(attrs, slog.Any("error", err))...)
		return
	}
	l.LogAttrs(context.Background(), slog.LevelDebug, "symbol table decoded", attrs...)
}

// LogOverflow records a rejected intern past limit.
func (l *Logger) LogOverflow(limit Symbol) {
	l.LogAttrs(context.Background(), slog.LevelError, "symbol space exhausted",
		slog.Uint64("limit", uint64(limit)),
	)
}

// LogSnapshot records a snapshot save or load of size bytes.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, size int, err error) {
	if err != nil {
		l.LogAttrs(ctx, slog.LevelError, "snapshot "+op+" failed",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return
	}
	l.LogAttrs(ctx, slog.LevelInfo, "snapshot "+op+" completed",
		slog.String("name", name),
		slog.Int("bytes", size),
	)
}
