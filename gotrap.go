package gotrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinzhu/inflection"

	"github.com/mickamy/gotrap/internal/buffer"
)

// RedactFunc defines a function used to sanitize or mask values before logging.
type RedactFunc func(key string, v any) any

// RedactMap maps field names to specific redaction functions.
type RedactMap map[string]RedactFunc

// Mask is a RedactFunc that hides the value entirely.
func Mask(_ string, v any) any {
	if v == nil {
		return nil
	}
	return "[REDACTED]"
}

// DefaultHistoryLimit bounds the history buffer when Config.HistoryLimit is zero.
const DefaultHistoryLimit = 1024

// Config defines the main configuration options for gotrap.
type Config struct {
	Redact       RedactMap        // optional key-based redaction
	ForwardReads bool             // get trap returns the stored value instead of nothing
	HistoryLimit int              // max events kept; 0 uses DefaultHistoryLimit, negative disables history
	Loggers      []Logger         // receive every event before the access is applied
	Now          func() time.Time // clock for Event.At
}

// Handler is the main entry point that manages gotrap behavior.
type Handler struct {
	cfg Config
	buf *buffer.Buffer[Event]
}

// New creates a new Handler instance with sensible defaults.
func New(cfg Config) *Handler {
	if cfg.Redact == nil {
		cfg.Redact = RedactMap{}
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Loggers == nil {
		cfg.Loggers = []Logger{NewSlogLogger(slog.Default())}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	h := &Handler{cfg: cfg}
	if cfg.HistoryLimit > 0 {
		h.buf = buffer.NewBuffer[Event](cfg.HistoryLimit)
	}
	return h
}

// Traps returns the logging traps:
//   - get logs the field and its current value, then returns nothing
//     (or the stored value when Config.ForwardReads is set);
//   - set logs the old and new value, stores the new value and reports success.
//
// Writes to undeclared fields are logged and rejected.
func (h *Handler) Traps() Traps {
	return Traps{Get: h.onGet, Set: h.onSet}
}

// Wrap attaches the logging traps to r.
func (h *Handler) Wrap(r *Record) *Proxy {
	return Wrap(r, h.Traps())
}

// History returns a copy of the recorded events, oldest first.
// It is nil when nothing has been recorded.
func (h *Handler) History() []Event {
	if h.buf == nil || h.buf.Len() == 0 {
		return nil
	}
	return h.buf.Snapshot()
}

// Drain returns the recorded events and clears the history.
func (h *Handler) Drain() []Event {
	if h.buf == nil {
		return nil
	}
	return h.buf.Drain()
}

func (h *Handler) onGet(ctx context.Context, r *Record, field string) any {
	v, ok := r.Lookup(field)
	e := h.newEvent(ctx, OpGet, r, field)
	e.Value = h.redact(field, v)
	e.Found = ok
	e.Accepted = ok
	h.emit(ctx, e)
	if h.cfg.ForwardReads {
		return v
	}
	return nil
}

func (h *Handler) onSet(ctx context.Context, r *Record, field string, value any) bool {
	old, ok := r.Lookup(field)
	e := h.newEvent(ctx, OpSet, r, field)
	e.Old = h.redact(field, old)
	e.New = h.redact(field, value)
	e.Found = ok
	e.Accepted = ok
	h.emit(ctx, e)
	if !ok {
		return false
	}
	return r.Put(field, value) == nil
}

func (h *Handler) newEvent(ctx context.Context, op Op, r *Record, field string) Event {
	m := MetaFrom(ctx)
	return Event{
		Op:       op,
		Record:   r.Name(),
		Field:    field,
		ID:       pickID(r),
		At:       h.cfg.Now(),
		Operator: m.Operator,
		TraceID:  m.TraceID,
		Reason:   m.Reason,
	}
}

// emit hands e to every logger in order and records it unless the context asks to skip.
func (h *Handler) emit(ctx context.Context, e Event) {
	for _, l := range h.cfg.Loggers {
		if l != nil {
			l.Log(ctx, e)
		}
	}
	if h.buf != nil && !skipped(ctx) {
		h.buf.Add(e)
	}
}

// redact applies the configured redaction for key, if any.
func (h *Handler) redact(key string, v any) any {
	if fn, ok := h.cfg.Redact[key]; ok && fn != nil {
		return fn(key, v)
	}
	return v
}

// pickID attempts to choose a sensible identity for the record.
func pickID(r *Record) any {
	// Heuristics: "id" first; then "<singular>_id", else nil.
	if v, ok := r.Lookup("id"); ok {
		return v
	}
	if r.Name() == "" {
		return nil
	}
	singularID := fmt.Sprintf("%s_id", inflection.Singular(r.Name()))
	if v, ok := r.Lookup(singularID); ok {
		return v
	}
	return nil
}
