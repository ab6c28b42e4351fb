package relay

import (
	"iter"
	"sync"
)

type SubscriberSet interface {
	All() iter.Seq[Subscriber]
}

// Hub is the subscriber set owned by the socket transport.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]Subscriber)}
}

func (h *Hub) Add(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[s.ID()] = s
}

func (h *Hub) Remove(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, s.ID())
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// All iterates the current members. The lock is held while yielding, so yield must not call
// Add or Remove.
func (h *Hub) All() iter.Seq[Subscriber] {
	return func(yield func(Subscriber) bool) {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, s := range h.subs {
			if !yield(s) {
				return
			}
		}
	}
}
