// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires URL patterns to handler functions.

# Route Registration

NewRouter builds the complete route table using Go 1.22+ method-and-pattern
matching on http.ServeMux:

	mux := router.NewRouter(db, cfg, qnaStore, guessStore, hub)

Path parameters use {name} syntax and are read with r.PathValue("name") in
the handlers. Every route except /health, / and the websocket upgrade is
wrapped in middleware.WithLogging.

# Dependencies

The router constructs the interactions.Registry itself, but the session
stores and the websocket hub come in from main so their lifetime spans the
whole process: session state lives exactly as long as the server.
*/
package router
