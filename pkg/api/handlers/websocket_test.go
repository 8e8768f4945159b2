package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mindcore/mindcore/pkg/logger"
)

func TestConnectionManagerLimit(t *testing.T) {
	m := NewConnectionManager(2)

	a, b, c := newWSClient(nil), newWSClient(nil), newWSClient(nil)
	if err := m.Register(a); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if err := m.Register(b); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if err := m.Register(c); err == nil {
		t.Error("third register succeeded past limit")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}

	m.Unregister(a)
	if !m.CanAccept() {
		t.Error("CanAccept() = false after unregister")
	}
}

func TestClientSubscriptionFiltering(t *testing.T) {
	c := newWSClient(nil)

	// No subscriptions: receive everything.
	if !c.shouldReceive("st-1") || !c.shouldReceive("") {
		t.Error("unfiltered client should receive all events")
	}

	c.subscribe("st-1")
	if !c.shouldReceive("st-1") {
		t.Error("subscribed state filtered out")
	}
	if c.shouldReceive("st-2") {
		t.Error("unsubscribed state delivered")
	}
	if c.shouldReceive("") {
		t.Error("unattributed event delivered to filtered client")
	}

	c.unsubscribe("st-1")
	if !c.shouldReceive("st-2") {
		t.Error("client with no subscriptions should receive all again")
	}
}

func TestBroadcastFiltersByStateID(t *testing.T) {
	m := NewConnectionManager(10)

	all := newWSClient(nil)
	only1 := newWSClient(nil)
	only1.subscribe("st-1")
	m.Register(all)
	m.Register(only1)

	err := m.Broadcast(EventMessage{
		Type:      "state.updated",
		Timestamp: time.Now(),
		Payload:   map[string]any{"state_id": "st-2"},
	})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	if len(all.send) != 1 {
		t.Errorf("unfiltered client got %d messages, want 1", len(all.send))
	}
	if len(only1.send) != 0 {
		t.Errorf("filtered client got %d messages, want 0", len(only1.send))
	}
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		host    string
		allowed []string
		want    bool
	}{
		{"no origin", "", "api.local", nil, true},
		{"wildcard", "http://evil.example", "api.local", []string{"*"}, true},
		{"exact match", "http://app.local", "api.local", []string{"http://app.local"}, true},
		{"same host", "http://api.local", "api.local", nil, true},
		{"rejected", "http://evil.example", "api.local", []string{"http://app.local"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws/events", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := isWebSocketOriginAllowed(r, tt.allowed); got != tt.want {
				t.Errorf("isWebSocketOriginAllowed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWebSocketEndToEnd(t *testing.T) {
	log := logger.New(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	h := NewWebSocketHandler(log, WebSocketConfig{AllowedOrigins: []string{"*"}})
	defer h.Close()

	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Scope the stream to one state.
	sub := map[string]any{"type": "subscribe", "state_id": "st-1"}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Give the read pump time to apply the subscription.
	deadline := time.Now().Add(2 * time.Second)
	for h.manager.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	h.Broadcast(EventMessage{Type: "state.updated", Payload: map[string]any{"state_id": "st-2"}})
	h.Broadcast(EventMessage{Type: "state.updated", Payload: map[string]any{"state_id": "st-1", "outcome": "created"}})

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev EventMessage
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	payload, _ := ev.Payload.(map[string]any)
	if payload["state_id"] != "st-1" {
		t.Errorf("received event for %v, want st-1", payload["state_id"])
	}
}

func TestWebSocketRejectsPlainHTTP(t *testing.T) {
	log := logger.New(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	h := NewWebSocketHandler(log, WebSocketConfig{})
	defer h.Close()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/events", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
