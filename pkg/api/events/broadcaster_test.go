package events

import (
	"testing"
	"time"
)

func TestSubscribeReceivesBroadcast(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe(4)
	defer b.Unsubscribe(ch)

	b.BroadcastStateLifecycle("state.created", "st-1", "episodic")

	select {
	case ev := <-ch:
		if ev.Type != "state.created" {
			t.Errorf("type = %q, want state.created", ev.Type)
		}
		payload, ok := ev.Payload.(map[string]any)
		if !ok {
			t.Fatalf("payload type = %T", ev.Payload)
		}
		if payload["state_id"] != "st-1" {
			t.Errorf("state_id = %v, want st-1", payload["state_id"])
		}
		if ev.Timestamp.IsZero() {
			t.Error("timestamp not set")
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe(1)
	b.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}
	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}

	// Double unsubscribe must not panic.
	b.Unsubscribe(ch)
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe(1)
	defer b.Unsubscribe(ch)

	b.Broadcast(Event{Type: "first"})
	b.Broadcast(Event{Type: "second"}) // buffer full, dropped

	ev := <-ch
	if ev.Type != "first" {
		t.Errorf("type = %q, want first", ev.Type)
	}
	select {
	case ev := <-ch:
		t.Errorf("unexpected second event %q", ev.Type)
	default:
	}
}

func TestBroadcastStateUpdatedPayload(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe(1)
	defer b.Unsubscribe(ch)

	b.BroadcastStateUpdated("st-9", "reinforced", 3, 12.5, 0.8, 0.01, 2.5, 0.75)

	ev := <-ch
	payload := ev.Payload.(map[string]any)
	if payload["outcome"] != "reinforced" {
		t.Errorf("outcome = %v", payload["outcome"])
	}
	if payload["occupied_slots"] != 3 {
		t.Errorf("occupied_slots = %v", payload["occupied_slots"])
	}
	if payload["reinforcement_ratio"] != float32(0.75) {
		t.Errorf("reinforcement_ratio = %v", payload["reinforcement_ratio"])
	}
}
