// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guessnumber

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/slidepulse/slidepulse/models"
)

// ErrSlideIDRequired reports an empty slide id passed to a lifecycle
// operation; a programmer error, not a user condition.
var ErrSlideIDRequired = errors.New("guessnumber: slide id is required")

const (
	defaultMinValue = 1
	defaultMaxValue = 10
)

// Settings configures a guess-number session.
type Settings struct {
	MinValue      float64
	MaxValue      float64
	CorrectAnswer *float64
}

// State is a read-only snapshot of a session. Distribution maps the guessed
// number (formatted as a string for stable JSON keys) to its submission
// count.
type State struct {
	MinValue      float64        `json:"minValue"`
	MaxValue      float64        `json:"maxValue"`
	CorrectAnswer *float64       `json:"correctAnswer"`
	Distribution  map[string]int `json:"distribution"`
}

type session struct {
	slideID   string
	settings  Settings
	responses map[float64]int
}

// Store holds guess-number sessions keyed by slide id. A strict subset of
// the Q&A store design: no duplicate, rate-limit, or active-item concepts.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

// InitializeSession creates the session if absent or overwrites its settings
// in place, keeping the accumulated guesses.
func (s *Store) InitializeSession(slideID string, settings Settings) error {
	if slideID == "" {
		return ErrSlideIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[slideID]; ok {
		existing.settings = settings
		return nil
	}

	s.sessions[slideID] = &session{
		slideID:   slideID,
		settings:  settings,
		responses: make(map[float64]int),
	}
	return nil
}

// ClearSession removes the session record entirely. No-op when absent.
func (s *Store) ClearSession(slideID string) error {
	if slideID == "" {
		return ErrSlideIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, slideID)
	return nil
}

// ClearAllSessionsForPresentation removes every session whose slide id
// appears in slideIDs.
func (s *Store) ClearAllSessionsForPresentation(_ string, slideIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range slideIDs {
		if id == "" {
			return ErrSlideIDRequired
		}
		delete(s.sessions, id)
	}
	return nil
}

// GetState snapshots the session, defaulting to a 1..10 range with an empty
// distribution for unknown slides.
func (s *Store) GetState(slideID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(slideID)
}

func (s *Store) stateLocked(slideID string) State {
	sess, ok := s.sessions[slideID]
	if !ok {
		return State{
			MinValue:     defaultMinValue,
			MaxValue:     defaultMaxValue,
			Distribution: map[string]int{},
		}
	}

	dist := make(map[string]int, len(sess.responses))
	for value, count := range sess.responses {
		dist[formatNumber(value)] = count
	}
	return State{
		MinValue:      sess.settings.MinValue,
		MaxValue:      sess.settings.MaxValue,
		CorrectAnswer: sess.settings.CorrectAnswer,
		Distribution:  dist,
	}
}

// SubmitGuess validates and records a guess, incrementing the count for that
// number. The guess arrives as a string so both JSON numbers and numeric
// strings are accepted upstream.
func (s *Store) SubmitGuess(slideID, participantID, guess string) (State, *models.SessionError) {
	if participantID == "" {
		return State{}, &models.SessionError{
			Kind: models.KindUnauthenticated, Message: "Participant information missing.",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		return State{}, &models.SessionError{
			Kind: models.KindNotInitialized, Message: "Guess session not initialized.",
		}
	}

	value, err := strconv.ParseFloat(guess, 64)
	if err != nil {
		return State{}, &models.SessionError{
			Kind: models.KindInvalidInput, Message: "Invalid guess value.",
		}
	}

	if value < sess.settings.MinValue || value > sess.settings.MaxValue {
		return State{}, &models.SessionError{
			Kind: models.KindInvalidInput,
			Message: fmt.Sprintf("Guess must be between %s and %s.",
				formatNumber(sess.settings.MinValue), formatNumber(sess.settings.MaxValue)),
		}
	}

	sess.responses[value]++
	return s.stateLocked(slideID), nil
}

// ClearResponses empties the guess counts without destroying the session.
func (s *Store) ClearResponses(slideID string) (State, *models.SessionError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		return State{}, &models.SessionError{
			Kind: models.KindNotInitialized, Message: "Session not initialized.",
		}
	}

	sess.responses = make(map[float64]int)
	return s.stateLocked(slideID), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
