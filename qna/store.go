// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qna

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slidepulse/slidepulse/models"
)

// ErrSlideIDRequired reports a structurally invalid call: an empty slide id
// passed to a store lifecycle operation. This is a programmer error, not a
// user condition, so it surfaces as a plain error rather than a SessionError.
var ErrSlideIDRequired = errors.New("qna: slide id is required")

const (
	msgNotInitialized = "Q&A session not initialized."
	msgMissingAuthor  = "Participant information missing."
	msgEmptyQuestion  = "Please enter a question."
	msgDuplicate      = "This question has already been asked."
	msgWaitForAnswer  = "Please wait for your previous question to be answered before asking another."
	msgOnePerSlide    = "You can only ask one question for this slide."
	msgNotFound       = "Question not found."
)

type session struct {
	slideID          string
	allowMultiple    bool
	questions        []Question
	activeQuestionID string // "" when none
}

// Store is the thread of record for all Q&A sessions, keyed by slide id.
// Construct one with NewStore and inject it into whatever serves requests.
// All operations run to completion under a single mutex, so operations
// against the same slide observe a total order.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session

	// Overridable for tests.
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// InitializeSession creates the session for slideID if absent, or updates
// allowMultiple in place on the existing record. Existing questions and the
// active-question pointer are untouched.
func (s *Store) InitializeSession(slideID string, allowMultiple bool) error {
	if slideID == "" {
		return ErrSlideIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[slideID]; ok {
		existing.allowMultiple = allowMultiple
		return nil
	}

	s.sessions[slideID] = &session{
		slideID:       slideID,
		allowMultiple: allowMultiple,
	}
	return nil
}

// GetSession returns a copy of the session, or nil (with a nil error) when
// no session exists for slideID.
func (s *Store) GetSession(slideID string) (*Session, error) {
	if slideID == "" {
		return nil, ErrSlideIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		return nil, nil
	}

	snap := &Session{
		SlideID:          sess.slideID,
		AllowMultiple:    sess.allowMultiple,
		Questions:        sortedQuestions(sess.questions),
		ActiveQuestionID: activePtr(sess.activeQuestionID),
	}
	return snap, nil
}

// ClearSession removes the session record entirely. Missing sessions are a
// no-op, not an error.
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
// appears in slideIDs. Sessions are keyed purely by slide id; the
// presentation id is accepted for interface symmetry only.
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

// GetState returns a snapshot of the session's externally visible state.
// Unknown (or empty) slide ids yield the default shape instead of failing,
// so callers can always render something.
func (s *Store) GetState(slideID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(slideID)
}

func (s *Store) stateLocked(slideID string) State {
	sess, ok := s.sessions[slideID]
	if !ok {
		return State{Questions: []Question{}}
	}
	return State{
		AllowMultiple:    sess.allowMultiple,
		Questions:        sortedQuestions(sess.questions),
		ActiveQuestionID: activePtr(sess.activeQuestionID),
	}
}

// SubmitQuestion validates and records a participant's question, returning
// the created question and a fresh state snapshot. Validation failures are
// returned as SessionError values in check order: missing participant,
// missing session, empty text, duplicate text, pending-question limit,
// one-question-total limit.
func (s *Store) SubmitQuestion(req SubmitRequest) (Question, State, *models.SessionError) {
	if req.ParticipantID == "" {
		return Question{}, State{}, errOf(models.KindUnauthenticated, msgMissingAuthor)
	}
	if req.SlideID == "" {
		return Question{}, State{}, errOf(models.KindInvalidArgument, "Slide information missing.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[req.SlideID]
	if !ok {
		return Question{}, State{}, errOf(models.KindNotInitialized, msgNotInitialized)
	}

	text, ok := sanitizeQuestionText(req.Text)
	if !ok {
		return Question{}, State{}, errOf(models.KindInvalidInput, msgEmptyQuestion)
	}

	for _, q := range sess.questions {
		if strings.EqualFold(q.Text, text) {
			return Question{}, State{}, errOf(models.KindDuplicate, msgDuplicate)
		}
	}

	var pending, total int
	for _, q := range sess.questions {
		if q.AuthorID != req.ParticipantID {
			continue
		}
		total++
		if !q.Answered {
			pending++
		}
	}

	if pending > 0 {
		msg := msgOnePerSlide
		if sess.allowMultiple {
			msg = msgWaitForAnswer
		}
		return Question{}, State{}, errOf(models.KindRateLimited, msg)
	}
	if !sess.allowMultiple && total > 0 {
		return Question{}, State{}, errOf(models.KindRateLimited, msgOnePerSlide)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	question := Question{
		ID:         id,
		Text:       text,
		Timestamp:  s.now().UnixMilli(),
		AuthorID:   req.ParticipantID,
		AuthorName: normalizeAuthorName(req.ParticipantName),
	}

	sess.questions = append(sess.questions, question)
	sort.SliceStable(sess.questions, func(i, j int) bool {
		return sess.questions[i].Timestamp < sess.questions[j].Timestamp
	})

	return question, s.stateLocked(req.SlideID), nil
}

// MarkAnswered sets the answered flag on a question and stamps answeredAt.
// The stamp is written even when un-marking; see the package docs for why
// this quirk is kept. A non-nil answerText replaces the stored reply
// (trimmed, capped); nil leaves it untouched. Marking the active question
// answered clears the active-question pointer.
func (s *Store) MarkAnswered(slideID, questionID string, answered bool, answerText *string) (Question, State, *models.SessionError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		return Question{}, State{}, errOf(models.KindNotInitialized, msgNotInitialized)
	}

	idx := -1
	for i, q := range sess.questions {
		if q.ID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Question{}, State{}, errOf(models.KindNotFound, msgNotFound)
	}

	target := &sess.questions[idx]
	target.Answered = answered
	target.AnsweredAt = s.now().UnixMilli()

	if answerText != nil {
		target.AnswerText = truncate(strings.TrimSpace(*answerText), maxAnswerLen)
	}

	if sess.activeQuestionID == questionID {
		sess.activeQuestionID = ""
	}

	return *target, s.stateLocked(slideID), nil
}

// SetActiveQuestion highlights the question being discussed. An empty
// questionID clears the pointer. Answered questions may be activated; that
// is left to presenter discretion.
func (s *Store) SetActiveQuestion(slideID, questionID string) (State, *models.SessionError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		return State{}, errOf(models.KindNotInitialized, msgNotInitialized)
	}

	if questionID == "" {
		sess.activeQuestionID = ""
		return s.stateLocked(slideID), nil
	}

	found := false
	for _, q := range sess.questions {
		if q.ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return State{}, errOf(models.KindNotFound, msgNotFound)
	}

	sess.activeQuestionID = questionID
	return s.stateLocked(slideID), nil
}

// ClearQuestions empties the question list and resets the active-question
// pointer. Settings such as allowMultiple survive; the session record itself
// is kept.
func (s *Store) ClearQuestions(slideID string) (State, *models.SessionError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		return State{}, errOf(models.KindNotInitialized, msgNotInitialized)
	}

	sess.questions = nil
	sess.activeQuestionID = ""
	return s.stateLocked(slideID), nil
}

// UpdateSettings creates the session if absent and forces allowMultiple to
// the supplied value. Always succeeds for a non-empty slide id.
func (s *Store) UpdateSettings(slideID string, allowMultiple bool) (State, *models.SessionError) {
	if slideID == "" {
		return State{}, errOf(models.KindInvalidArgument, "Slide information missing.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[slideID]
	if !ok {
		sess = &session{slideID: slideID}
		s.sessions[slideID] = sess
	}
	sess.allowMultiple = allowMultiple
	return s.stateLocked(slideID), nil
}

func sortedQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func activePtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
