package realtime

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Emit after the hub has shut down.
var ErrClosed = errors.New("hub closed")

// Event is a named payload delivered on a user's private channel.
type Event struct {
	Name    string
	Payload interface{}
}

// Notifier is the narrow delivery interface the broadcaster depends on.
// Delivery is best effort; callers never block on it.
type Notifier interface {
	Emit(userID, event string, payload interface{}) error
}

const subscriberBuffer = 16

// Hub is the per-user connection registry. It is created at server start,
// injected where needed and closed at shutdown; there is no package-level
// instance.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Event]bool // userID -> subscriber channels
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]bool)}
}

// Join subscribes a connection to userID's channel. The returned leave func
// must be called when the connection goes away.
func (h *Hub) Join(userID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]bool)
	}
	h.subs[userID][ch] = true

	leave := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[userID]; ok && set[ch] {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
			close(ch)
		}
	}
	return ch, leave
}

// Emit delivers an event to every connection userID currently has. A slow
// subscriber's full buffer drops the event rather than blocking the caller;
// a user with no connections simply misses it.
func (h *Hub) Emit(userID, event string, payload interface{}) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	for ch := range h.subs[userID] {
		select {
		case ch <- Event{Name: event, Payload: payload}:
		default:
		}
	}
	return nil
}

// Close tears down every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, set := range h.subs {
		for ch := range set {
			close(ch)
		}
	}
	h.subs = make(map[string]map[chan Event]bool)
}
