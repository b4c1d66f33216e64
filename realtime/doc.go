// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime pushes session state to connected clients over websockets.

Clients subscribe to a single slide via GET /ws/slides/{id}. After every
mutating session operation the HTTP handlers call Hub.Broadcast with a fresh
state projection, and the hub fans the JSON envelope out to that slide's
subscribers:

	{"type": "qna_state", "slideId": "...", "payload": {...}}

Subscriptions are read-only; inbound frames are discarded. Slow consumers
are disconnected rather than allowed to block broadcasts.
*/
package realtime
