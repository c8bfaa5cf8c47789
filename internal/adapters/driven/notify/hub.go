// Package notify provides an in-process event hub fanning pipeline
// events out to live subscribers, such as SSE connections.
package notify

import (
	"sync"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// Ensure Hub implements the interface.
var _ driven.Notifier = (*Hub)(nil)

// Event is one pipeline notification.
type Event struct {
	// Saved is the number of items persisted by the triggering run.
	Saved int `json:"saved"`

	// At is the event timestamp.
	At time.Time `json:"at"`
}

// Hub is an in-process publish/subscribe fan-out for pipeline events.
// Publishing never blocks: a subscriber that has fallen behind misses
// the event rather than stalling the orchestrator.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// PipelineItemsUpdated broadcasts the event to all subscribers.
func (h *Hub) PipelineItemsUpdated(saved int) {
	event := Event{Saved: saved, At: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not draining; drop rather than block.
		}
	}
}

// Subscribe registers a new subscriber and returns its event channel
// together with an unsubscribe function. The unsubscribe function is
// idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
