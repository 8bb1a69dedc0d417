package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	StaffID string
	Event   string
	Data    interface{}
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a staff member and returns the event channel and cleanup function
func (h *Hub) Subscribe(staffID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[staffID] == nil {
		h.subscribers[staffID] = make(map[chan Event]struct{})
	}
	h.subscribers[staffID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[staffID], ch)
		close(ch)
		if len(h.subscribers[staffID]) == 0 {
			delete(h.subscribers, staffID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific staff member
func (h *Hub) Publish(staffID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[staffID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a staff member
func (h *Hub) SubscriberCount(staffID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[staffID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
