package gotrap

import (
	"context"
)

// GetTrap runs in place of a field read. Its return value is what the reader observes.
type GetTrap func(ctx context.Context, r *Record, field string) any

// SetTrap runs in place of a field write. Returning false rejects the write.
type SetTrap func(ctx context.Context, r *Record, field string, value any) bool

// Traps holds the handlers bound to a Proxy. A nil trap forwards to the record.
type Traps struct {
	Get GetTrap
	Set SetTrap
}

// Proxy routes every field access of a record through its traps.
type Proxy struct {
	target *Record
	traps  Traps
}

// Wrap binds traps to r. The traps cannot be changed afterwards. Wrap panics with
// ErrNilRecord when r is nil.
func Wrap(r *Record, traps Traps) *Proxy {
	if r == nil {
		panic(ErrNilRecord)
	}
	return &Proxy{target: r, traps: traps}
}

// Get reads field through the get trap.
func (p *Proxy) Get(field string) any {
	return p.GetContext(context.Background(), field)
}

// GetContext reads field through the get trap. The trap is invoked exactly once
// and its result is returned as is.
func (p *Proxy) GetContext(ctx context.Context, field string) any {
	if p.traps.Get == nil {
		v, _ := p.target.Lookup(field)
		return v
	}
	return p.traps.Get(ctx, p.target, field)
}

// Set writes field through the set trap. Callers must check the result:
// false means the write was rejected.
func (p *Proxy) Set(field string, value any) bool {
	return p.SetContext(context.Background(), field, value)
}

// SetContext writes field through the set trap, invoking it exactly once.
func (p *Proxy) SetContext(ctx context.Context, field string, value any) bool {
	if p.traps.Set == nil {
		return p.target.Put(field, value) == nil
	}
	return p.traps.Set(ctx, p.target, field, value)
}

// Target returns the wrapped record for direct, non-intercepted inspection.
func (p *Proxy) Target() *Record {
	return p.target
}
