// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/slidepulse/slidepulse/auth"
	"github.com/slidepulse/slidepulse/cliparse"
	"github.com/slidepulse/slidepulse/interactions"
	"github.com/slidepulse/slidepulse/middleware"
	"github.com/slidepulse/slidepulse/models"
	"github.com/slidepulse/slidepulse/realtime"
)

var validSlideTypes = map[string]bool{
	models.TypeQna:            true,
	models.TypeMultipleChoice: true,
	models.TypeWordCloud:      true,
	models.TypeRanking:        true,
	models.TypeGuessNumber:    true,
}

type SlideHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	registry *interactions.Registry
	hub      *realtime.Hub
}

func NewSlideHandler(db *sql.DB, cfg cliparse.Config, registry *interactions.Registry, hub *realtime.Hub) *SlideHandler {
	return &SlideHandler{db: db, cfg: cfg, registry: registry, hub: hub}
}

// AddSlide handles POST /presentations/:id/slides
func (h *SlideHandler) AddSlide(w http.ResponseWriter, r *http.Request) {
	presentationID := r.PathValue("id")
	if presentationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "presentation_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(presentationID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.AddSlideRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validSlideTypes[req.Type] {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid slide type")
		return
	}

	// Check presentation exists
	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM presentation WHERE id = $1)`, presentationID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query presentation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Presentation not found")
		return
	}

	slideID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate slide ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create slide")
		return
	}

	settingsJSON, err := json.Marshal(req.Settings)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid settings")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO slide (id, presentation_id, position, type, title, settings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, slideID, presentationID, req.Position, req.Type, req.Title, string(settingsJSON), time.Now())

	if err != nil {
		slog.Error("failed to insert slide", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create slide")
		return
	}

	// Session-backed types get their in-memory session up front so the first
	// participant submission doesn't race the presenter opening the slide.
	h.registry.EnsureSession(&models.Slide{
		ID:             slideID,
		PresentationID: presentationID,
		Type:           req.Type,
		Settings:       req.Settings,
	})

	slog.Info("slide added", "presentation_id", presentationID, "slide_id", slideID, "type", req.Type)

	middleware.JSONResponse(w, http.StatusCreated, models.AddSlideResponse{
		SlideID: slideID,
	})
}

// UpdateSettings handles PATCH /slides/:id/settings
// Persists the new settings and pushes them into the live session for
// session-backed slide types, broadcasting the refreshed projection.
func (h *SlideHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateSlideSettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	settingsJSON, err := json.Marshal(req.Settings)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid settings")
		return
	}

	_, err = h.db.Exec(`UPDATE slide SET settings = $1 WHERE id = $2`, string(settingsJSON), slideID)
	if err != nil {
		slog.Error("failed to update slide settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	slide.Settings = req.Settings
	h.registry.EnsureSession(slide)

	// Subscribers see the settings change immediately (e.g. allowMultiple
	// flipping mid-session).
	switch slide.Type {
	case models.TypeQna:
		h.hub.Broadcast(slideID, "qna_state", h.registry.QnaState(slideID))
	case models.TypeGuessNumber:
		h.hub.Broadcast(slideID, "guess_state", h.registry.GuessState(slideID))
	}

	slog.Info("slide settings updated", "slide_id", slideID, "type", slide.Type)

	middleware.JSONResponse(w, http.StatusOK, slide)
}

// loadSlide fetches a single slide row, returning sql.ErrNoRows untouched so
// callers can map it to a 404.
func loadSlide(db *sql.DB, slideID string) (*models.Slide, error) {
	row := db.QueryRow(`
		SELECT id, presentation_id, position, type, title, settings, created_at
		FROM slide
		WHERE id = $1
	`, slideID)

	slide, err := scanSlide(row)
	if err != nil {
		return nil, err
	}
	return &slide, nil
}
