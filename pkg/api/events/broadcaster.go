// Package events provides in-process event broadcasting for websocket
// subscribers.
package events

import (
	"sync"
	"time"
)

// Event is the canonical event payload broadcast to websocket
// subscribers. Payloads carry meta-cognitive scalars only, never stored
// vector content.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Broadcaster broadcasts events to in-process subscribers.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewBroadcaster creates a broadcaster instance.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe subscribes to events with a buffered channel.
func (b *Broadcaster) Subscribe(buffer int) chan Event {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)
}

// Broadcast broadcasts a generic event to all subscribers. Slow
// subscribers are skipped rather than blocked on.
func (b *Broadcaster) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	subs := make([]chan Event, 0, len(b.subscribers))
	for ch := range b.subscribers {
		subs = append(subs, ch)
	}
	b.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// BroadcastStateLifecycle emits a state lifecycle event
// (state.created, state.reset, state.deleted, state.saved,
// state.loaded).
func (b *Broadcaster) BroadcastStateLifecycle(eventType, stateID, name string) {
	b.Broadcast(Event{
		Type: eventType,
		Payload: map[string]any{
			"state_id": stateID,
			"name":     name,
		},
	})
}

// BroadcastStateUpdated emits a state update event carrying the update
// outcome and the content-free calibration signal.
func (b *Broadcaster) BroadcastStateUpdated(
	stateID, outcome string,
	occupiedSlots int,
	age, plasticity, velocity, maturity, reinforcementRatio float32,
) {
	b.Broadcast(Event{
		Type: "state.updated",
		Payload: map[string]any{
			"state_id":            stateID,
			"outcome":             outcome,
			"occupied_slots":      occupiedSlots,
			"age":                 age,
			"plasticity":          plasticity,
			"velocity":            velocity,
			"maturity":            maturity,
			"reinforcement_ratio": reinforcementRatio,
		},
	})
}

// SubscriberCount returns the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
