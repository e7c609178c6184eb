// Package notify carries typed change events from the tracking writers to
// the analytics dashboard. The dashboard treats an event purely as a
// refetch trigger; no payload beyond the event kind and key is consumed.
package notify

import "sync"

// Event kinds published by the tracking services.
const (
	VisitorUpserted = "visitor_upserted"
	VisitorExpired  = "visitor_expired"
	PageViewed      = "page_viewed"
)

// Event describes one change to a tracked table.
type Event struct {
	Kind      string `json:"kind"`
	SessionID string `json:"sessionId,omitempty"`
	PagePath  string `json:"pagePath,omitempty"`
}

// Hub fans change events out to subscribers. Slow subscribers are skipped
// rather than blocking the publisher: a dropped refresh trigger is
// harmless because the dashboard also polls.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	buffer      int
}

// NewHub creates a hub whose subscriber channels buffer up to buffer
// events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 8
	}
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a new listener and returns its channel together with
// an unsubscribe function. The channel is closed on unsubscribe.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber with buffer room.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports how many listeners are registered.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
