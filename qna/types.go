// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qna

import (
	"strings"

	"github.com/slidepulse/slidepulse/models"
)

const (
	maxQuestionLen = 200
	maxAnswerLen   = 1000
	maxNameLen     = 80

	defaultAuthorName = "Anonymous"
)

// Question is a single audience question within a session.
type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Answered   bool   `json:"answered"`
	AnswerText string `json:"answerText,omitempty"`
	// Submission time in epoch milliseconds; the sole sort key.
	Timestamp  int64  `json:"timestamp"`
	AnsweredAt int64  `json:"answeredAt,omitempty"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
}

// State is a read-only snapshot of a session's externally visible state.
// Questions is a fresh copy sorted ascending by timestamp; mutating it does
// not affect the session.
type State struct {
	AllowMultiple    bool       `json:"allowMultiple"`
	Questions        []Question `json:"questions"`
	ActiveQuestionID *string    `json:"activeQuestionId"`
}

// Session is a point-in-time copy of a session record.
type Session struct {
	SlideID          string     `json:"slideId"`
	AllowMultiple    bool       `json:"allowMultiple"`
	Questions        []Question `json:"questions"`
	ActiveQuestionID *string    `json:"activeQuestionId"`
}

// SubmitRequest carries a participant's question submission.
type SubmitRequest struct {
	SlideID         string
	ParticipantID   string
	ParticipantName string
	Text            string
	// Optional; a UUID is generated when empty.
	ID string
}

func errOf(kind models.ErrorKind, msg string) *models.SessionError {
	return &models.SessionError{Kind: kind, Message: msg}
}

// sanitizeQuestionText trims and caps question text. Returns ok=false when
// the text is empty after trimming.
func sanitizeQuestionText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	return truncate(trimmed, maxQuestionLen), true
}

// normalizeAuthorName trims the display name, falling back to "Anonymous".
func normalizeAuthorName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return defaultAuthorName
	}
	return truncate(trimmed, maxNameLen)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
