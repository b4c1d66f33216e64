// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared across the
API, plus the session error taxonomy.

# Request Types

Types for parsing incoming JSON:

  - CreatePresentationRequest: title, presenter_name
  - AddSlideRequest: type, title, position, settings
  - UpdateSlideSettingsRequest: settings
  - JoinRequest: name
  - SubmitQuestionRequest: text, name, optional id
  - MarkAnsweredRequest: answered (default true), answer_text
  - SetActiveQuestionRequest: question_id (empty clears)
  - SubmitGuessRequest: guess (number or numeric string)
  - SubmitResponseRequest: answer

# Response Types

  - CreatePresentationResponse: presentation_id, admin_key, join_code
  - AddSlideResponse: slide_id
  - JoinResponse: presentation_id, participant_token
  - SubmitResponseResponse: response_id
  - ErrorResponse: error, kind, message

# Domain Types

  - Presentation: presentation metadata and join code
  - Slide: typed slide with per-type settings
  - SlideSettings: options / ranking_items / qna / guess_number sections
  - Response: a persisted participant answer for a stateless interaction

# Session Errors

SessionError carries a machine-readable ErrorKind alongside a human-readable
message. Session operations return these as values instead of failing, so the
transport layer can surface the message directly to the originating client
and branch on the kind (e.g. disabling a submit button on KindRateLimited).

Kinds:

	KindInvalidArgument  missing/empty slide identifier
	KindUnauthenticated  missing participant identifier
	KindNotInitialized   no session exists for the slide
	KindInvalidInput     empty or malformed submission
	KindDuplicate        duplicate question text within a session
	KindRateLimited      pending/total question limit violated
	KindNotFound         referenced question id does not exist

# Constants

Slide types:

	TypeQna            = "qna"
	TypeMultipleChoice = "multiple_choice"
	TypeWordCloud      = "word_cloud"
	TypeRanking        = "ranking"
	TypeGuessNumber    = "guess_number"
*/
package models
