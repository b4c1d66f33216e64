// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/slidepulse/slidepulse/auth"
	"github.com/slidepulse/slidepulse/cliparse"
	"github.com/slidepulse/slidepulse/interactions"
	"github.com/slidepulse/slidepulse/middleware"
	"github.com/slidepulse/slidepulse/models"
	"github.com/slidepulse/slidepulse/qna"
	"github.com/slidepulse/slidepulse/realtime"
)

type QnaHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	store    *qna.Store
	registry *interactions.Registry
	hub      *realtime.Hub
}

func NewQnaHandler(db *sql.DB, cfg cliparse.Config, store *qna.Store, registry *interactions.Registry, hub *realtime.Hub) *QnaHandler {
	return &QnaHandler{db: db, cfg: cfg, store: store, registry: registry, hub: hub}
}

// questionResponse pairs the created/updated question with a fresh state
// snapshot so clients never need a follow-up fetch.
type questionResponse struct {
	Question qna.Question `json:"question"`
	QnaState qna.State    `json:"qnaState"`
}

type stateResponse struct {
	QnaState qna.State `json:"qnaState"`
}

// ensureSessionFromSlide lazily initializes the session from the persisted
// slide settings. Unknown slides are fine; the store answers NotInitialized.
func (h *QnaHandler) ensureSessionFromSlide(slideID string) {
	slide, err := loadSlide(h.db, slideID)
	if err != nil {
		return
	}
	h.registry.EnsureSession(slide)
}

// SubmitQuestion handles POST /slides/:id/questions
func (h *QnaHandler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	participantToken := r.Header.Get("X-Participant-Token")

	var req models.SubmitQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.ensureSessionFromSlide(slideID)

	question, state, serr := h.store.SubmitQuestion(qna.SubmitRequest{
		SlideID:         slideID,
		ParticipantID:   participantToken,
		ParticipantName: req.Name,
		Text:            req.Text,
		ID:              req.ID,
	})
	if serr != nil {
		middleware.SessionErrorResponse(w, serr)
		return
	}

	slog.Info("question submitted", "slide_id", slideID, "question_id", question.ID)

	h.hub.Broadcast(slideID, "qna_state", state)

	middleware.JSONResponse(w, http.StatusCreated, questionResponse{
		Question: question,
		QnaState: state,
	})
}

// MarkAnswered handles POST /slides/:id/questions/:qid/answer
// Presenter-only. Answered defaults to true when the body omits it.
func (h *QnaHandler) MarkAnswered(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	questionID := r.PathValue("qid")

	if !h.authorizePresenter(w, r, slideID) {
		return
	}

	var req models.MarkAnsweredRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		req = models.MarkAnsweredRequest{}
	}

	answered := true
	if req.Answered != nil {
		answered = *req.Answered
	}

	question, state, serr := h.store.MarkAnswered(slideID, questionID, answered, req.AnswerText)
	if serr != nil {
		middleware.SessionErrorResponse(w, serr)
		return
	}

	slog.Info("question marked", "slide_id", slideID, "question_id", questionID, "answered", answered)

	h.hub.Broadcast(slideID, "qna_state", state)

	middleware.JSONResponse(w, http.StatusOK, questionResponse{
		Question: question,
		QnaState: state,
	})
}

// SetActiveQuestion handles POST /slides/:id/active-question
// Presenter-only. An empty question_id clears the highlight.
func (h *QnaHandler) SetActiveQuestion(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")

	if !h.authorizePresenter(w, r, slideID) {
		return
	}

	var req models.SetActiveQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		req = models.SetActiveQuestionRequest{}
	}

	state, serr := h.store.SetActiveQuestion(slideID, req.QuestionID)
	if serr != nil {
		middleware.SessionErrorResponse(w, serr)
		return
	}

	slog.Info("active question set", "slide_id", slideID, "question_id", req.QuestionID)

	h.hub.Broadcast(slideID, "qna_state", state)

	middleware.JSONResponse(w, http.StatusOK, stateResponse{QnaState: state})
}

// ClearQuestions handles DELETE /slides/:id/questions
// Presenter-only. Settings survive; only the questions go.
func (h *QnaHandler) ClearQuestions(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")

	if !h.authorizePresenter(w, r, slideID) {
		return
	}

	state, serr := h.store.ClearQuestions(slideID)
	if serr != nil {
		middleware.SessionErrorResponse(w, serr)
		return
	}

	slog.Info("questions cleared", "slide_id", slideID)

	h.hub.Broadcast(slideID, "qna_state", state)

	middleware.JSONResponse(w, http.StatusOK, stateResponse{QnaState: state})
}

// GetState handles GET /slides/:id/qna
// Audience-readable projection; initializes the session from the slide so a
// fresh slide renders its configured settings rather than the default shape.
func (h *QnaHandler) GetState(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	if slideID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slide_id is required")
		return
	}

	h.ensureSessionFromSlide(slideID)

	middleware.JSONResponse(w, http.StatusOK, stateResponse{QnaState: h.store.GetState(slideID)})
}

// authorizePresenter resolves the slide's presentation and validates the
// admin key against it. Writes the error response itself; callers just bail
// on false.
func (h *QnaHandler) authorizePresenter(w http.ResponseWriter, r *http.Request, slideID string) bool {
	if slideID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slide_id is required")
		return false
	}

	slide, err := loadSlide(h.db, slideID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Slide not found")
		return false
	}
	if err != nil {
		slog.Error("failed to query slide", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(slide.PresentationID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}

	h.registry.EnsureSession(slide)
	return true
}
