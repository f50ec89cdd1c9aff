// Package sink persists canonical events. The contract is a keyed,
// idempotent upsert: (namespace, event_url) identifies a logical record,
// each call is independent, and a second write for the same key overwrites
// the non-key fields (last-write-wins).
package sink

import (
	"context"
	"sync"

	"github.com/pintuSINGH2000/sraping/internal/event"
)

// Sink is the storage collaborator for canonical events.
type Sink interface {
	Upsert(ctx context.Context, namespace string, ev *event.Event) error
	Close(ctx context.Context) error
}

// Memory is an in-process Sink used for dry runs and tests.
type Memory struct {
	mu      sync.Mutex
	records map[string]*event.Event
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*event.Event)}
}

// Upsert stores the event under its identity key. Re-upserting the same
// key replaces the record: last write wins.
func (m *Memory) Upsert(_ context.Context, namespace string, ev *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[event.Key(namespace, ev.EventURL)] = ev
	return nil
}

// Close is a no-op.
func (m *Memory) Close(context.Context) error { return nil }

// Len returns the number of logical records held.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Get returns the record stored for a key, or nil.
func (m *Memory) Get(namespace, eventURL string) *event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[event.Key(namespace, eventURL)]
}
