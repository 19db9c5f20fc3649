package buffer

import (
	"sync"
)

// Buffer collects intercepted events. When limit > 0 the oldest entries are evicted first.
type Buffer[T any] struct {
	mu    sync.Mutex
	ts    []T
	limit int
}

func NewBuffer[T any](limit int) *Buffer[T] {
	return &Buffer[T]{limit: limit}
}

func (b *Buffer[T]) Add(e T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ts = append(b.ts, e)
	if b.limit > 0 && len(b.ts) > b.limit {
		n := copy(b.ts, b.ts[len(b.ts)-b.limit:])
		clear(b.ts[n:])
		b.ts = b.ts[:n]
	}
}

// Snapshot returns a copy of the buffered entries without draining them.
func (b *Buffer[T]) Snapshot() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.ts) == 0 {
		return nil
	}
	out := make([]T, len(b.ts))
	copy(out, b.ts)
	return out
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ts)
}

func (b *Buffer[T]) Drain() []T {
	b.mu.Lock()
	es := b.ts
	b.ts = nil
	b.mu.Unlock()
	return es
}
