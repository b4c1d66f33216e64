// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the SlidePulse API server.

SlidePulse is an audience-interaction service for live presentations:
presenters build slide decks of interactive elements (Q&A, multiple choice,
word clouds, rankings, guess-the-number) and audiences participate from
their phones using a short join code, with results pushed live over
websockets.

# Starting the Server

The server reads configuration from CLI flags, environment variables, or a
local .env file:

	ADMIN_KEY_SALT=... JOIN_CODE_SALT=... go run .

Or with flags:

	go run . -p 8484 -t sqlite -d slidepulse.db -admin-salt ... -join-salt ...

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for presenter key HMAC
  - JOIN_CODE_SALT (--join-salt): Secret for join code derivation

Optional settings:

  - PORT (-p): Server port (default: 8484)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): Connection string; sqlite defaults to slidepulse.db

# Architecture

The server uses a handler-based architecture with dependency injection:

  - qna: The live Q&A session state machine (in-memory, mutex-guarded)
  - guessnumber: Guess-the-number sessions
  - interactions: Per-slide-type normalization and result tallying
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - realtime: Websocket hub pushing state projections per slide
  - middleware: CORS, logging, JSON helpers, session error mapping
  - models: Request/response types and the session error taxonomy
  - auth: Admin keys, join codes, participant tokens
  - db: Schema creation (sqlite and postgres)
  - cliparse: Configuration parsing

Presentations, slides, participants, and stateless responses are persisted;
live session state (questions, guesses) is in-memory by design and does not
survive a restart.

See package documentation for each component.
*/
package main
