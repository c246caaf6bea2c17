// Package bus implements the change notification mechanism that keeps
// independent store consumers consistent. Two complementary channels
// exist: same-process signals published directly by the record store,
// and cross-process signals raised by a filesystem watcher when another
// process rewrites the backing database. Both carry no record-level
// payload — a subscriber's only correct reaction to any signal is to
// re-read the full store. Re-reading after a duplicate or reordered
// signal must therefore be harmless, and is: the store is the single
// source of truth, the signals only say "look again".
package bus

import (
	"sync"

	"github.com/fraudlens/fraudlens/internal/service"
)

// subscriberBuffer bounds each subscriber channel. Signals are
// fire-and-forget: a subscriber that falls this far behind loses
// intermediate signals, which is safe because every signal means the
// same thing.
const subscriberBuffer = 8

// Bus fans change signals out to in-process subscribers.
type Bus struct {
	subscribers map[int]chan service.Signal
	mu          sync.RWMutex
	nextID      int
	closed      bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		subscribers: make(map[int]chan service.Signal),
	}
}

// Publish delivers sig to every current subscriber without blocking.
// Subscribers with full buffers are skipped.
func (b *Bus) Publish(sig service.Signal) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- sig:
		default:
			// Subscriber is behind; the signal it eventually drains
			// already tells it to re-read everything.
		}
	}
}

// Subscribe registers a subscriber and returns its channel plus a cancel
// function. Cancel is idempotent and closes the channel.
func (b *Bus) Subscribe() (<-chan service.Signal, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan service.Signal, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Close shuts the bus down, closing every subscriber channel. Publishes
// after Close are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
