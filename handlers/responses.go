// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/slidepulse/slidepulse/cliparse"
	"github.com/slidepulse/slidepulse/interactions"
	"github.com/slidepulse/slidepulse/middleware"
	"github.com/slidepulse/slidepulse/models"
	"github.com/slidepulse/slidepulse/realtime"
)

type ResponseHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	registry *interactions.Registry
	hub      *realtime.Hub
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config, registry *interactions.Registry, hub *realtime.Hub) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg, registry: registry, hub: hub}
}

// SubmitResponse handles POST /slides/:id/responses
// Stateless interactions only; Q&A and guess-number slides collect input
// through their session endpoints.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("id")
	if slideID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slide_id is required")
		return
	}

	participantToken := r.Header.Get("X-Participant-Token")
	if participantToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Participant-Token header required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
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

	if !h.registry.Supported(slide.Type) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slide type does not accept direct responses")
		return
	}

	normalized, err := h.registry.NormalizeAnswer(slide, req.Answer)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	answerJSON, err := json.Marshal(normalized)
	if err != nil {
		slog.Error("failed to marshal answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	responseID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO response (id, slide_id, participant_id, answer, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, responseID, slideID, participantToken, string(answerJSON), time.Now())

	if err != nil {
		slog.Error("failed to insert response", "error", err, "slide_id", slideID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	slog.Info("response submitted", "slide_id", slideID, "response_id", responseID)

	// Push fresh results so projector views update without polling.
	if results, err := h.buildResults(slide); err != nil {
		slog.Warn("failed to build results for broadcast", "error", err, "slide_id", slideID)
	} else {
		h.hub.Broadcast(slideID, "results", results)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: responseID,
	})
}

// GetResults handles GET /slides/:id/results
func (h *ResponseHandler) GetResults(w http.ResponseWriter, r *http.Request) {
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

	results, err := h.buildResults(slide)
	if err != nil {
		slog.Error("failed to build results", "error", err, "slide_id", slideID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

func (h *ResponseHandler) buildResults(slide *models.Slide) (map[string]any, error) {
	responses, err := loadResponses(h.db, slide.ID)
	if err != nil {
		return nil, err
	}
	return h.registry.BuildResults(slide, responses)
}

func loadResponses(db *sql.DB, slideID string) ([]models.Response, error) {
	rows, err := db.Query(`
		SELECT id, slide_id, participant_id, answer, submitted_at
		FROM response
		WHERE slide_id = $1
		ORDER BY submitted_at
	`, slideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		var response models.Response
		var answerJSON string
		if err := rows.Scan(&response.ID, &response.SlideID, &response.ParticipantID,
			&answerJSON, &response.SubmittedAt); err != nil {
			return nil, err
		}
		// Guesses are stored as bare numeric strings, everything else as JSON.
		if err := json.Unmarshal([]byte(answerJSON), &response.Answer); err != nil {
			response.Answer = answerJSON
		}
		responses = append(responses, response)
	}
	return responses, rows.Err()
}
