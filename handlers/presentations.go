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
	"github.com/slidepulse/slidepulse/guessnumber"
	"github.com/slidepulse/slidepulse/middleware"
	"github.com/slidepulse/slidepulse/models"
	"github.com/slidepulse/slidepulse/qna"
)

type PresentationHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	qna     *qna.Store
	guesses *guessnumber.Store
}

func NewPresentationHandler(db *sql.DB, cfg cliparse.Config, qnaStore *qna.Store, guessStore *guessnumber.Store) *PresentationHandler {
	return &PresentationHandler{db: db, cfg: cfg, qna: qnaStore, guesses: guessStore}
}

// CreatePresentation handles POST /presentations
func (h *PresentationHandler) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePresentationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.PresenterName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "presenter_name is required")
		return
	}

	// Generate presentation ID
	presentationID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate presentation ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create presentation")
		return
	}

	// Admin key and join code are both derived from the ID, so neither needs
	// its own column.
	adminKey := auth.GenerateAdminKey(presentationID, h.cfg.AdminKeySalt)
	joinCode := auth.GenerateJoinCode(presentationID, h.cfg.JoinCodeSalt)

	_, err = h.db.Exec(`
		INSERT INTO presentation (id, title, presenter_name, join_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, presentationID, req.Title, req.PresenterName, joinCode, time.Now())

	if err != nil {
		slog.Error("failed to insert presentation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create presentation")
		return
	}

	slog.Info("presentation created", "presentation_id", presentationID, "presenter", req.PresenterName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePresentationResponse{
		PresentationID: presentationID,
		AdminKey:       adminKey,
		JoinCode:       joinCode,
	})
}

// GetPresentation handles GET /presentations/:id
// Returns the presentation with its slides, audience-readable.
func (h *PresentationHandler) GetPresentation(w http.ResponseWriter, r *http.Request) {
	presentationID := r.PathValue("id")
	if presentationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "presentation_id is required")
		return
	}

	var presentation models.Presentation
	err := h.db.QueryRow(`
		SELECT id, title, presenter_name, join_code, created_at
		FROM presentation
		WHERE id = $1
	`, presentationID).Scan(
		&presentation.ID, &presentation.Title, &presentation.PresenterName,
		&presentation.JoinCode, &presentation.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Presentation not found")
		return
	}
	if err != nil {
		slog.Error("failed to query presentation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slides, err := loadSlides(h.db, presentationID)
	if err != nil {
		slog.Error("failed to query slides", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PresentationWithSlides{
		Presentation: presentation,
		Slides:       slides,
	})
}

// DeletePresentation handles DELETE /presentations/:id
// Removes the presentation and everything under it, then tears down every
// in-memory session belonging to its slides.
func (h *PresentationHandler) DeletePresentation(w http.ResponseWriter, r *http.Request) {
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

	// Collect slide IDs before deleting so sessions can be cleared afterwards.
	rows, err := h.db.Query(`SELECT id FROM slide WHERE presentation_id = $1`, presentationID)
	if err != nil {
		slog.Error("failed to query slides", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	var slideIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan slide", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		slideIDs = append(slideIDs, id)
	}

	// Explicit child deletes; FK cascade is not guaranteed on every driver.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM response WHERE slide_id IN (SELECT id FROM slide WHERE presentation_id = $1)`, presentationID); err != nil {
		slog.Error("failed to delete responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete presentation")
		return
	}
	if _, err := tx.Exec(`DELETE FROM slide WHERE presentation_id = $1`, presentationID); err != nil {
		slog.Error("failed to delete slides", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete presentation")
		return
	}
	if _, err := tx.Exec(`DELETE FROM participant WHERE presentation_id = $1`, presentationID); err != nil {
		slog.Error("failed to delete participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete presentation")
		return
	}
	result, err := tx.Exec(`DELETE FROM presentation WHERE id = $1`, presentationID)
	if err != nil {
		slog.Error("failed to delete presentation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete presentation")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Presentation not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete presentation")
		return
	}

	// Sessions are torn down after the commit; a failed delete must not lose
	// live session state.
	if err := h.qna.ClearAllSessionsForPresentation(presentationID, slideIDs); err != nil {
		slog.Warn("failed to clear qna sessions", "error", err, "presentation_id", presentationID)
	}
	if err := h.guesses.ClearAllSessionsForPresentation(presentationID, slideIDs); err != nil {
		slog.Warn("failed to clear guess sessions", "error", err, "presentation_id", presentationID)
	}

	slog.Info("presentation deleted", "presentation_id", presentationID, "slides", len(slideIDs))

	w.WriteHeader(http.StatusNoContent)
}

// Join handles POST /join/:code
// Resolves the join code and hands the participant an opaque token.
func (h *PresentationHandler) Join(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("code")
	if joinCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "join code is required")
		return
	}

	// Name is optional; empty body is fine too.
	var req models.JoinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		req = models.JoinRequest{}
	}

	var presentationID string
	err := h.db.QueryRow(`SELECT id FROM presentation WHERE join_code = $1`, joinCode).Scan(&presentationID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Presentation not found")
		return
	}
	if err != nil {
		slog.Error("failed to query presentation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participantToken, err := auth.GenerateParticipantToken()
	if err != nil {
		slog.Error("failed to generate participant token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join")
		return
	}

	// Salted one-way IP hash for abuse tracking; tokens alone are free to
	// mint, the hash ties repeat joins together. Reuse admin salt for IP hashing.
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt)

	_, err = h.db.Exec(`
		INSERT INTO participant (presentation_id, token, name, ip_hash, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`, presentationID, participantToken, req.Name, ipHash, time.Now())

	if err != nil {
		slog.Error("failed to insert participant", "error", err, "presentation_id", presentationID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join")
		return
	}

	slog.Info("participant joined", "presentation_id", presentationID)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinResponse{
		PresentationID:   presentationID,
		ParticipantToken: participantToken,
	})
}

func loadSlides(db *sql.DB, presentationID string) ([]models.Slide, error) {
	rows, err := db.Query(`
		SELECT id, presentation_id, position, type, title, settings, created_at
		FROM slide
		WHERE presentation_id = $1
		ORDER BY position, created_at
	`, presentationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slides := []models.Slide{}
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}
	return slides, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlide(row rowScanner) (models.Slide, error) {
	var slide models.Slide
	var title sql.NullString
	var settingsJSON string

	err := row.Scan(&slide.ID, &slide.PresentationID, &slide.Position,
		&slide.Type, &title, &settingsJSON, &slide.CreatedAt)
	if err != nil {
		return models.Slide{}, err
	}

	slide.Title = title.String
	if settingsJSON != "" {
		if err := json.Unmarshal([]byte(settingsJSON), &slide.Settings); err != nil {
			return models.Slide{}, err
		}
	}
	return slide, nil
}
