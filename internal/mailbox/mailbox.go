package mailbox

import (
	"context"
	"sync"
)

// Mailbox is a single-slot buffer where the latest job always wins.
// It is NOT a queue: it holds at most one pending job, and Put overwrites
// any job already waiting. The scheduler uses this to collapse backup
// ticks that fire while a run is still in flight.
type Mailbox[T any] struct {
	mu   sync.Mutex
	slot *T
	sig  chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{sig: make(chan struct{}, 1)}
}

// Put stores a job, replacing any pending one. It never blocks.
func (m *Mailbox[T]) Put(j T) {
	m.mu.Lock()
	m.slot = &j
	m.mu.Unlock()

	select {
	case m.sig <- struct{}{}:
	default:
	}
}

// Take blocks until a job is available or ctx is done. The second return
// value is false when ctx ended the wait.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	for {
		if j, ok := m.tryTake(); ok {
			return j, true
		}

		select {
		case <-m.sig:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

func (m *Mailbox[T]) tryTake() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.slot == nil {
		var zero T
		return zero, false
	}

	j := *m.slot
	m.slot = nil
	return j, true
}
