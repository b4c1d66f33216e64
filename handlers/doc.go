// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the SlidePulse API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - PresentationHandler: Presentation lifecycle (create, get, delete) and joining
  - SlideHandler: Slide creation and settings updates
  - QnaHandler: Q&A session operations
  - GuessHandler: Guess-number session operations
  - ResponseHandler: Stateless interaction responses and results

Handlers are created via constructor functions:

	qnaHandler := handlers.NewQnaHandler(db, cfg, qnaStore, registry, hub)

# Presenter Flow

Presenters drive everything with the X-Admin-Key header, an HMAC over the
presentation id (never stored):

	POST /presentations                → CreatePresentation (returns admin_key, join_code)
	POST /presentations/{id}/slides    → AddSlide
	PATCH /slides/{id}/settings        → UpdateSettings
	POST /slides/{id}/questions/{qid}/answer → MarkAnswered
	POST /slides/{id}/active-question  → SetActiveQuestion
	DELETE /slides/{id}/questions      → ClearQuestions
	DELETE /slides/{id}/guesses        → ClearGuesses
	DELETE /presentations/{id}         → DeletePresentation (tears down sessions)

# Participant Flow

Participants join with a code and carry the X-Participant-Token header. The
token is opaque and unverified; the session core uses it as the author id
for rate limiting and ownership.

	POST /join/{code}           → Join (returns participant_token)
	POST /slides/{id}/questions → SubmitQuestion
	POST /slides/{id}/guesses   → SubmitGuess
	POST /slides/{id}/responses → SubmitResponse (multiple_choice, word_cloud, ranking)

# Session Errors

Q&A and guess-number operations return *models.SessionError values from the
stores. middleware.SessionErrorResponse maps the kind to an HTTP status and
forwards the display-ready message verbatim, so participants see exactly
what the session core decided ("This question has already been asked.").

# Broadcasts

Every mutating session operation broadcasts the fresh projection to the
slide's websocket subscribers as "qna_state" or "guess_state"; stateless
response submissions broadcast recomputed "results".
*/
package handlers
