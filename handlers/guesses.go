// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/slidepulse/slidepulse/auth"
	"github.com/slidepulse/slidepulse/cliparse"
	"github.com/slidepulse/slidepulse/guessnumber"
	"github.com/slidepulse/slidepulse/interactions"
	"github.com/slidepulse/slidepulse/middleware"
	"github.com/slidepulse/slidepulse/models"
	"github.com/slidepulse/slidepulse/realtime"
)

type GuessHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	store    *guessnumber.Store
	registry *interactions.Registry
	hub      *realtime.Hub
}

func NewGuessHandler(db *sql.DB, cfg cliparse.Config, store *guessnumber.Store, registry *interactions.Registry, hub *realtime.Hub) *GuessHandler {
	return &GuessHandler{db: db, cfg: cfg, store: store, registry: registry, hub: hub}
}

type guessStateResponse struct {
	GuessNumberState guessnumber.State `json:"guessNumberState"`
}

func (h *GuessHandler) ensureSessionFromSlide(slideID string) {
	slide, err := loadSlide(h.db, slideID)
	if err != nil {
		return
	}
	h.registry.EnsureSession(slide)
}

// SubmitGuess handles POST /slides/:id/guesses
// Accepts the guess as a JSON number or a numeric string. Valid guesses are
// also persisted as response rows so results survive a restart.
func (h *GuessHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	participantToken := r.Header.Get("X-Participant-Token")

	var req models.SubmitGuessRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.ensureSessionFromSlide(slideID)

	state, serr := h.store.SubmitGuess(slideID, participantToken, guessAsString(req.Guess))
	if serr != nil {
		middleware.SessionErrorResponse(w, serr)
		return
	}

	// Best-effort persistence; the live distribution already has the guess.
	responseID, err := auth.GenerateID(16)
	if err == nil {
		_, err = h.db.Exec(`
			INSERT INTO response (id, slide_id, participant_id, answer, submitted_at)
			VALUES ($1, $2, $3, $4, $5)
		`, responseID, slideID, participantToken, guessAsString(req.Guess), time.Now())
	}
	if err != nil {
		slog.Warn("failed to persist guess", "error", err, "slide_id", slideID)
	}

	slog.Info("guess submitted", "slide_id", slideID)

	h.hub.Broadcast(slideID, "guess_state", state)

	middleware.JSONResponse(w, http.StatusCreated, guessStateResponse{GuessNumberState: state})
}

// ClearGuesses handles DELETE /slides/:id/guesses
// Presenter-only. Clears both the live distribution and the persisted rows.
func (h *GuessHandler) ClearGuesses(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	if slideID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slide_id is required")
		return
	}

	slide, err := loadSlide(h.db, slideID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Slide not found")
		return
	}
	if err != nil {
		slog.Error("failed to query slide", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(slide.PresentationID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	h.registry.EnsureSession(slide)

	state, serr := h.store.ClearResponses(slideID)
	if serr != nil {
		middleware.SessionErrorResponse(w, serr)
		return
	}

	if _, err := h.db.Exec(`DELETE FROM response WHERE slide_id = $1`, slideID); err != nil {
		slog.Warn("failed to delete persisted guesses", "error", err, "slide_id", slideID)
	}

	slog.Info("guesses cleared", "slide_id", slideID)

	h.hub.Broadcast(slideID, "guess_state", state)

	middleware.JSONResponse(w, http.StatusOK, guessStateResponse{GuessNumberState: state})
}

// GetState handles GET /slides/:id/guess-state
func (h *GuessHandler) GetState(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	if slideID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slide_id is required")
		return
	}

	h.ensureSessionFromSlide(slideID)

	middleware.JSONResponse(w, http.StatusOK, guessStateResponse{GuessNumberState: h.store.GetState(slideID)})
}

// guessAsString flattens the wire value for the store, which parses it once.
// Unparseable shapes become a string the store will reject as invalid.
func guessAsString(guess any) string {
	switch v := guess.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	}
	return ""
}
