package gotrap

import (
	"context"
)

// Meta carries operational context recorded with every intercepted access.
type Meta struct {
	Operator string
	TraceID  string
	Reason   string
}

type metaKey struct{}
type skipKey struct{}

// WithMeta replaces the access metadata carried by ctx.
func WithMeta(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, m)
}

// MetaFrom returns the metadata attached to ctx, if any. Custom traps can use it
// to tag their own logs.
func MetaFrom(ctx context.Context) Meta {
	if m, ok := ctx.Value(metaKey{}).(Meta); ok {
		return m
	}
	return Meta{}
}

// WithOperator attaches an operator identifier to the context.
func WithOperator(ctx context.Context, v string) context.Context {
	m := MetaFrom(ctx)
	m.Operator = v
	return WithMeta(ctx, m)
}

// WithTraceID attaches a trace identifier.
func WithTraceID(ctx context.Context, v string) context.Context {
	m := MetaFrom(ctx)
	m.TraceID = v
	return WithMeta(ctx, m)
}

// WithReason attaches a human-readable reason for the access.
func WithReason(ctx context.Context, v string) context.Context {
	m := MetaFrom(ctx)
	m.Reason = v
	return WithMeta(ctx, m)
}

// WithSkip keeps accesses made with ctx out of history. They are still logged.
func WithSkip(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipKey{}, true)
}

func skipped(ctx context.Context) bool {
	v, _ := ctx.Value(skipKey{}).(bool)
	return v
}
