// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Slide type constants
const (
	TypeQna            = "qna"
	TypeMultipleChoice = "multiple_choice"
	TypeWordCloud      = "word_cloud"
	TypeRanking        = "ranking"
	TypeGuessNumber    = "guess_number"
)

// Session error kinds. Mutating session operations return these as values
// rather than failing, so the transport layer can forward the message to the
// originating client.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindNotInitialized  ErrorKind = "not_initialized"
	KindInvalidInput    ErrorKind = "invalid_input"
	KindDuplicate       ErrorKind = "duplicate"
	KindRateLimited     ErrorKind = "rate_limited"
	KindNotFound        ErrorKind = "not_found"
)

// SessionError is a user-triggerable failure from a session operation.
// The message is short and safe to display to the submitting participant
// or presenter as-is.
type SessionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *SessionError) Error() string { return e.Message }

// Request types

type CreatePresentationRequest struct {
	Title         string `json:"title"`
	PresenterName string `json:"presenter_name"`
}

type AddSlideRequest struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Position int           `json:"position"`
	Settings SlideSettings `json:"settings"`
}

type UpdateSlideSettingsRequest struct {
	Settings SlideSettings `json:"settings"`
}

type JoinRequest struct {
	Name string `json:"name"`
}

type SubmitQuestionRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
	// Optional client-supplied question id, generated when empty.
	ID string `json:"id,omitempty"`
}

type MarkAnsweredRequest struct {
	// Defaults to true when omitted.
	Answered *bool `json:"answered"`
	// When nil the stored answer text is left untouched.
	AnswerText *string `json:"answer_text"`
}

type SetActiveQuestionRequest struct {
	// Empty clears the active question.
	QuestionID string `json:"question_id"`
}

type SubmitGuessRequest struct {
	// Accepts a JSON number or a numeric string.
	Guess any `json:"guess"`
}

type SubmitResponseRequest struct {
	Answer any `json:"answer"`
}

// Response types

type CreatePresentationResponse struct {
	PresentationID string `json:"presentation_id"`
	AdminKey       string `json:"admin_key"`
	JoinCode       string `json:"join_code"`
}

type AddSlideResponse struct {
	SlideID string `json:"slide_id"`
}

type JoinResponse struct {
	PresentationID   string `json:"presentation_id"`
	ParticipantToken string `json:"participant_token"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
}

// Domain types

type Presentation struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	PresenterName string    `json:"presenter_name"`
	JoinCode      string    `json:"join_code"`
	CreatedAt     time.Time `json:"created_at"`
}

type Slide struct {
	ID             string        `json:"id"`
	PresentationID string        `json:"presentation_id"`
	Position       int           `json:"position"`
	Type           string        `json:"type"`
	Title          string        `json:"title"`
	Settings       SlideSettings `json:"settings"`
	CreatedAt      time.Time     `json:"created_at"`
}

// SlideSettings holds the per-type configuration stored alongside a slide.
// Only the section matching the slide type is consulted.
type SlideSettings struct {
	Options      []string             `json:"options,omitempty"`
	RankingItems []RankingItem        `json:"ranking_items,omitempty"`
	Qna          *QnaSettings         `json:"qna,omitempty"`
	GuessNumber  *GuessNumberSettings `json:"guess_number,omitempty"`
}

type QnaSettings struct {
	AllowMultiple bool `json:"allowMultiple"`
}

type GuessNumberSettings struct {
	MinValue      float64  `json:"minValue"`
	MaxValue      float64  `json:"maxValue"`
	CorrectAnswer *float64 `json:"correctAnswer,omitempty"`
}

type RankingItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type PresentationWithSlides struct {
	Presentation Presentation `json:"presentation"`
	Slides       []Slide      `json:"slides"`
}

type Response struct {
	ID            string    `json:"id"`
	SlideID       string    `json:"slide_id"`
	ParticipantID string    `json:"-"` // Never expose in JSON
	Answer        any       `json:"answer"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Error response

type ErrorResponse struct {
	Error   string    `json:"error"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Message string    `json:"message,omitempty"`
}
