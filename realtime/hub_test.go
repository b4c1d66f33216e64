// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"testing"
)

func newTestClient(hub *Hub, slideID string, buffer int) *Client {
	return &Client{
		hub:     hub,
		slideID: slideID,
		send:    make(chan []byte, buffer),
	}
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(hub, "s1", 4)
	c2 := newTestClient(hub, "s1", 4)
	other := newTestClient(hub, "s2", 4)
	hub.add("s1", c1)
	hub.add("s1", c2)
	hub.add("s2", other)

	hub.Broadcast("s1", "qna_state", map[string]any{"questions": []any{}})

	for _, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.send:
			var env Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				t.Fatalf("failed to unmarshal envelope: %v", err)
			}
			if env.Type != "qna_state" || env.SlideID != "s1" {
				t.Errorf("unexpected envelope: %+v", env)
			}
		default:
			t.Fatal("subscriber did not receive broadcast")
		}
	}

	select {
	case <-other.send:
		t.Fatal("subscriber of a different slide must not receive the broadcast")
	default:
	}
}

func TestBroadcastDropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub, "s1", 1)
	hub.add("s1", slow)

	hub.Broadcast("s1", "qna_state", "first")  // fills the buffer
	hub.Broadcast("s1", "qna_state", "second") // overflows, drops the client

	if got := hub.SubscriberCount("s1"); got != 0 {
		t.Errorf("expected slow subscriber to be dropped, count = %d", got)
	}
	if !slow.closed {
		t.Error("expected slow subscriber's channel to be closed")
	}
}

func TestRemoveUnsubscribes(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub, "s1", 4)
	hub.add("s1", c)

	if got := hub.SubscriberCount("s1"); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	hub.remove("s1", c)

	if got := hub.SubscriberCount("s1"); got != 0 {
		t.Errorf("expected 0 subscribers after remove, got %d", got)
	}

	// Broadcasting to an empty topic is a no-op.
	hub.Broadcast("s1", "qna_state", nil)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newTestClient(NewHub(), "s1", 1)
	c.close()
	c.close() // must not panic

	if c.trySend([]byte("x")) != true {
		t.Error("sends to a closed client should be swallowed, not reported as backpressure")
	}
}
