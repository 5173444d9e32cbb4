package sse

import (
	"sync"
)

// AllStaff is the topic that receives every staff member's events.
const AllStaff = ""

const subscriberBuffer = 16

// Event is one clock event pushed to live subscribers.
type Event struct {
	StaffID string
	Type    string
	Data    any
}

// Hub fans clock events out to subscribers. Subscribers either follow one staff ID
// or AllStaff. A nil *Hub drops everything.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for topic and returns its channel and a cleanup func.
// Cleanup closes the channel and is safe to call more than once.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[topic], ch)
			close(ch)
			if len(h.subscribers[topic]) == 0 {
				delete(h.subscribers, topic)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to the staff member's subscribers and to AllStaff.
// Slow subscribers miss events rather than block the publisher.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(topic string) {
		for ch := range h.subscribers[topic] {
			select {
			case ch <- event:
			default:
			}
		}
	}

	deliver(event.StaffID)
	if event.StaffID != AllStaff {
		deliver(AllStaff)
	}
}

// TotalSubscribers returns the total number of active subscribers across all topics
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
