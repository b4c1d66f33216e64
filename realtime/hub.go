// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Envelope is the wire format for pushed state updates.
type Envelope struct {
	Type    string `json:"type"`
	SlideID string `json:"slideId"`
	Payload any    `json:"payload"`
}

// Hub fans state snapshots out to websocket subscribers, grouped by slide
// id. Handlers call Broadcast after every mutating session operation; the
// hub performs no session logic of its own.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Client]struct{})}
}

func (h *Hub) add(slideID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subs[slideID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.subs[slideID] = clients
	}
	clients[c] = struct{}{}
}

func (h *Hub) remove(slideID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subs[slideID]
	if !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.subs, slideID)
	}
}

// Broadcast pushes an event to every subscriber of slideID. Clients whose
// send buffer is full are dropped rather than blocking the caller.
func (h *Hub) Broadcast(slideID, eventType string, payload any) {
	message, err := json.Marshal(Envelope{
		Type:    eventType,
		SlideID: slideID,
		Payload: payload,
	})
	if err != nil {
		slog.Error("failed to marshal broadcast", "error", err, "slide_id", slideID, "type", eventType)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.subs[slideID]))
	for c := range h.subs[slideID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.trySend(message) {
			slog.Warn("dropping slow websocket subscriber", "slide_id", slideID)
			c.close()
			h.remove(slideID, c)
		}
	}
}

// SubscriberCount reports how many clients are watching a slide.
func (h *Hub) SubscriberCount(slideID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[slideID])
}
