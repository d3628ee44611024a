package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"courtside/internal/domains/booking/model"
)

// MemoryHub holds a ledger shared by any number of in-process stores. Each
// Store handle plays the role of one browsing context: a write through one
// handle notifies every other handle but never the writer itself. It backs
// the tests and the degraded no-durable-storage mode, where bookings simply
// stop persisting across restarts.
type MemoryHub struct {
	mu     sync.Mutex
	ledger model.Ledger
	subs   []memorySubscriber
}

type memorySubscriber struct {
	origin  string
	handler func(date string)
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{ledger: model.Ledger{}}
}

// Store returns a new handle with its own identity on the shared ledger.
func (h *MemoryHub) Store() Store {
	return &memoryStore{hub: h, origin: uuid.NewString()}
}

func (h *MemoryHub) notify(origin, date string) {
	h.mu.Lock()
	subs := make([]memorySubscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, sub := range subs {
		if sub.origin == origin {
			continue
		}

		sub.handler(date)
	}
}

type memoryStore struct {
	hub    *MemoryHub
	origin string
}

func (m *memoryStore) LoadAll(_ context.Context) model.Ledger {
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()

	return m.hub.ledger.Clone()
}

func (m *memoryStore) SaveAll(_ context.Context, ledger model.Ledger) error {
	m.hub.mu.Lock()
	m.hub.ledger = ledger.Clone()
	m.hub.mu.Unlock()

	m.hub.notify(m.origin, "")

	return nil
}

func (m *memoryStore) BookedKeysForDate(ctx context.Context, date string) map[string]struct{} {
	return m.LoadAll(ctx).KeysFor(date)
}

func (m *memoryStore) SweepExpired(ctx context.Context, maxAge time.Duration) int {
	return sweepExpired(ctx, m, maxAge)
}

func (m *memoryStore) Mutate(_ context.Context, date string, apply func(model.Ledger) (model.Ledger, error)) error {
	m.hub.mu.Lock()

	next, err := apply(m.hub.ledger.Clone())
	if err != nil {
		m.hub.mu.Unlock()

		if errors.Is(err, ErrNoChange) {
			return nil
		}

		return err
	}

	m.hub.ledger = next
	m.hub.mu.Unlock()

	m.hub.notify(m.origin, date)

	return nil
}

func (m *memoryStore) Subscribe(handler func(date string)) {
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()

	m.hub.subs = append(m.hub.subs, memorySubscriber{origin: m.origin, handler: handler})
}
