package gotrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Logger receives every intercepted access.
type Logger interface {
	Log(ctx context.Context, e Event)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(ctx context.Context, e Event)

func (f LoggerFunc) Log(ctx context.Context, e Event) {
	f(ctx, e)
}

// WriterLogger prints one console line per event, e.g. "The value of age is 35".
type WriterLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{w: w}
}

func (l *WriterLogger) Log(_ context.Context, e Event) {
	if l == nil || l.w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.w, e.String())
}

// SlogLogger writes events as structured records.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger returns a SlogLogger. A nil logger falls back to slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Log(ctx context.Context, e Event) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", string(e.Op)),
		slog.String("record", e.Record),
		slog.String("field", e.Field),
	}
	switch e.Op {
	case OpGet:
		attrs = append(attrs, slog.String("value", FormatValue(e.Value, e.Found)))
	case OpSet:
		attrs = append(attrs,
			slog.String("old", FormatValue(e.Old, e.Found)),
			slog.String("new", FormatValue(e.New, true)),
			slog.Bool("accepted", e.Accepted),
		)
	}
	if e.ID != nil {
		attrs = append(attrs, slog.Any("id", e.ID))
	}
	if e.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", e.TraceID))
	}
	if e.Operator != "" {
		attrs = append(attrs, slog.String("operator", e.Operator))
	}
	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}
	level := slog.LevelInfo
	if !e.Found {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, e.String(), attrs...)
}
