package snapshot

import (
	"context"
	"encoding/json"
	"sync"
)

// Change is one whole-collection update broadcast to every view sharing
// the storage scope. Origin identifies the writing store so it can ignore
// its own notifications.
type Change struct {
	Origin  string          `json:"origin"`
	Record  string          `json:"record"`
	Payload json.RawMessage `json:"payload"`
}

// Bus delivers changes between concurrently open views. Delivery replaces,
// never merges: the payload is always the full collection the writer
// believes is current.
type Bus interface {
	Publish(ctx context.Context, change Change) error
	// Subscribe registers a handler and returns an unsubscribe func.
	// Handlers receive every published change, including the caller's
	// own; origin filtering is the subscriber's job.
	Subscribe(handler func(Change)) (unsubscribe func())
}

// MemoryBus is an in-process Bus for tests and single-process deployments.
type MemoryBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Change)
}

// NewMemoryBus creates an in-process change bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]func(Change))}
}

// Publish delivers the change to every subscriber synchronously.
func (b *MemoryBus) Publish(_ context.Context, change Change) error {
	b.mu.Lock()
	handlers := make([]func(Change), 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(change)
	}
	return nil
}

// Subscribe registers a handler.
func (b *MemoryBus) Subscribe(handler func(Change)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}
