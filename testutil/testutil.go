// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slidepulse/slidepulse/auth"
	"github.com/slidepulse/slidepulse/cliparse"
	"github.com/slidepulse/slidepulse/db"
	"github.com/slidepulse/slidepulse/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// Closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// In-memory sqlite gives each connection its own database; pin to one.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8484,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		JoinCodeSalt: "test-join-salt",
	}
}

// CreateTestPresentation inserts a presentation and returns its ID, admin key,
// and join code.
func CreateTestPresentation(t *testing.T, conn *sql.DB, cfg cliparse.Config) (presentationID, adminKey, joinCode string) {
	t.Helper()

	presentationID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(presentationID, cfg.AdminKeySalt)
	joinCode = auth.GenerateJoinCode(presentationID, cfg.JoinCodeSalt)

	_, err := conn.Exec(`
		INSERT INTO presentation (id, title, presenter_name, join_code, created_at)
		VALUES ($1, 'Test Presentation', 'TestPresenter', $2, $3)
	`, presentationID, joinCode, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test presentation: %v", err)
	}

	return presentationID, adminKey, joinCode
}

// AddTestSlide inserts a slide of the given type and returns its ID.
func AddTestSlide(t *testing.T, conn *sql.DB, presentationID, slideType string, settings models.SlideSettings) string {
	t.Helper()

	slideID, _ := auth.GenerateID(12)
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		t.Fatalf("Failed to marshal settings: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO slide (id, presentation_id, position, type, title, settings, created_at)
		VALUES ($1, $2, 0, $3, 'Test Slide', $4, $5)
	`, slideID, presentationID, slideType, string(settingsJSON), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test slide: %v", err)
	}

	return slideID
}

// CreateTestParticipant inserts a participant row and returns the token.
func CreateTestParticipant(t *testing.T, conn *sql.DB, presentationID, name string) string {
	t.Helper()

	token, _ := auth.GenerateParticipantToken()
	_, err := conn.Exec(`
		INSERT INTO participant (presentation_id, token, name, joined_at)
		VALUES ($1, $2, $3, $4)
	`, presentationID, token, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return token
}

// SubmitTestResponse inserts a response row for a slide.
func SubmitTestResponse(t *testing.T, conn *sql.DB, slideID, participantID string, answer any) string {
	t.Helper()

	responseID, _ := auth.GenerateID(16)
	answerJSON, err := json.Marshal(answer)
	if err != nil {
		t.Fatalf("Failed to marshal answer: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO response (id, slide_id, participant_id, answer, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, responseID, slideID, participantID, string(answerJSON), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return responseID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
