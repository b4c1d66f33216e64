// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qna

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidepulse/slidepulse/models"
)

func submit(t *testing.T, s *Store, slideID, participantID, name, text string) Question {
	t.Helper()
	q, _, serr := s.SubmitQuestion(SubmitRequest{
		SlideID:         slideID,
		ParticipantID:   participantID,
		ParticipantName: name,
		Text:            text,
	})
	require.Nil(t, serr, "expected submission to succeed")
	return q
}

func TestSubmitQuestionValidationOrder(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	tests := []struct {
		name     string
		req      SubmitRequest
		wantKind models.ErrorKind
		wantMsg  string
	}{
		{
			name:     "missing participant",
			req:      SubmitRequest{SlideID: "s1", Text: "hello"},
			wantKind: models.KindUnauthenticated,
			wantMsg:  "Participant information missing.",
		},
		{
			name:     "missing session",
			req:      SubmitRequest{SlideID: "uninitialized", ParticipantID: "p1", Text: "hello"},
			wantKind: models.KindNotInitialized,
			wantMsg:  "Q&A session not initialized.",
		},
		{
			name:     "empty text",
			req:      SubmitRequest{SlideID: "s1", ParticipantID: "p1", Text: "   "},
			wantKind: models.KindInvalidInput,
			wantMsg:  "Please enter a question.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, serr := s.SubmitQuestion(tt.req)
			require.NotNil(t, serr)
			assert.Equal(t, tt.wantKind, serr.Kind)
			assert.Equal(t, tt.wantMsg, serr.Message)
		})
	}
}

func TestSubmitQuestionSanitizesFields(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	longText := strings.Repeat("x", 250)
	q, state, serr := s.SubmitQuestion(SubmitRequest{
		SlideID:         "s1",
		ParticipantID:   "p1",
		ParticipantName: "   ",
		Text:            "  " + longText + "  ",
	})
	require.Nil(t, serr)

	assert.Len(t, q.Text, 200)
	assert.Equal(t, "Anonymous", q.AuthorName)
	assert.False(t, q.Answered)
	assert.NotEmpty(t, q.ID)
	assert.NotZero(t, q.Timestamp)
	require.Len(t, state.Questions, 1)
}

func TestSubmitQuestionKeepsCallerID(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	q, _, serr := s.SubmitQuestion(SubmitRequest{
		SlideID:       "s1",
		ParticipantID: "p1",
		Text:          "hello",
		ID:            "q-given",
	})
	require.Nil(t, serr)
	assert.Equal(t, "q-given", q.ID)
}

func TestDuplicateRejection(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	submit(t, s, "s1", "p1", "Alice", "What time?")

	_, _, serr := s.SubmitQuestion(SubmitRequest{
		SlideID: "s1", ParticipantID: "p2", ParticipantName: "Bob", Text: "what time?",
	})
	require.NotNil(t, serr)
	assert.Equal(t, models.KindDuplicate, serr.Kind)
	assert.Equal(t, "This question has already been asked.", serr.Message)

	assert.Len(t, s.GetState("s1").Questions, 1)
}

func TestRateLimitSingleMode(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", false))

	q := submit(t, s, "s1", "p1", "Alice", "first question")

	// Blocked while pending.
	_, _, serr := s.SubmitQuestion(SubmitRequest{
		SlideID: "s1", ParticipantID: "p1", Text: "second question",
	})
	require.NotNil(t, serr)
	assert.Equal(t, models.KindRateLimited, serr.Kind)
	assert.Equal(t, "You can only ask one question for this slide.", serr.Message)

	// Still blocked after the first is answered: one question total.
	_, _, serr2 := s.MarkAnswered("s1", q.ID, true, nil)
	require.Nil(t, serr2)

	_, _, serr = s.SubmitQuestion(SubmitRequest{
		SlideID: "s1", ParticipantID: "p1", Text: "third question",
	})
	require.NotNil(t, serr)
	assert.Equal(t, models.KindRateLimited, serr.Kind)

	// A different participant is unaffected.
	submit(t, s, "s1", "p2", "Bob", "another question")
}

func TestRateLimitMultipleMode(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	q := submit(t, s, "s1", "p1", "Alice", "first question")

	_, _, serr := s.SubmitQuestion(SubmitRequest{
		SlideID: "s1", ParticipantID: "p1", Text: "second question",
	})
	require.NotNil(t, serr)
	assert.Equal(t, models.KindRateLimited, serr.Kind)
	assert.Equal(t, "Please wait for your previous question to be answered before asking another.", serr.Message)

	_, _, serr2 := s.MarkAnswered("s1", q.ID, true, nil)
	require.Nil(t, serr2)

	// Answered questions no longer count against the pending limit.
	submit(t, s, "s1", "p1", "Alice", "third question")
	assert.Len(t, s.GetState("s1").Questions, 2)
}

func TestOrderingInvariant(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	for i := 0; i < 10; i++ {
		participant := fmt.Sprintf("p%d", i)
		submit(t, s, "s1", participant, "P", fmt.Sprintf("question %d", i))

		state := s.GetState("s1")
		for j := 1; j < len(state.Questions); j++ {
			assert.LessOrEqual(t, state.Questions[j-1].Timestamp, state.Questions[j].Timestamp,
				"questions must be non-decreasing by timestamp after every submit")
		}
	}
}

func TestMarkAnswered(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))
	q := submit(t, s, "s1", "p1", "Alice", "What is X?")

	answer := "X is Y"
	updated, state, serr := s.MarkAnswered("s1", q.ID, true, &answer)
	require.Nil(t, serr)

	assert.True(t, updated.Answered)
	assert.Equal(t, "X is Y", updated.AnswerText)
	assert.NotZero(t, updated.AnsweredAt)
	require.Len(t, state.Questions, 1)
	assert.True(t, state.Questions[0].Answered)
}

func TestMarkAnsweredErrors(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))

	_, _, serr := s.MarkAnswered("nope", "q1", true, nil)
	require.NotNil(t, serr)
	assert.Equal(t, models.KindNotInitialized, serr.Kind)

	_, _, serr = s.MarkAnswered("s1", "missing", true, nil)
	require.NotNil(t, serr)
	assert.Equal(t, models.KindNotFound, serr.Kind)
	assert.Equal(t, "Question not found.", serr.Message)
}

func TestMarkAnsweredAnswerTextHandling(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))
	q := submit(t, s, "s1", "p1", "Alice", "What is X?")

	long := "  " + strings.Repeat("a", 1100)
	updated, _, serr := s.MarkAnswered("s1", q.ID, true, &long)
	require.Nil(t, serr)
	assert.Len(t, updated.AnswerText, 1000)

	// nil answer text leaves the stored reply untouched.
	updated, _, serr = s.MarkAnswered("s1", q.ID, true, nil)
	require.Nil(t, serr)
	assert.Len(t, updated.AnswerText, 1000)
}

func TestMarkAnsweredStampsEvenWhenUnmarking(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))
	q := submit(t, s, "s1", "p1", "Alice", "What is X?")

	first, _, serr := s.MarkAnswered("s1", q.ID, true, nil)
	require.Nil(t, serr)

	second, _, serr := s.MarkAnswered("s1", q.ID, false, nil)
	require.Nil(t, serr)

	assert.False(t, second.Answered)
	assert.Greater(t, second.AnsweredAt, first.AnsweredAt,
		"answeredAt is restamped even on un-mark")
}

func TestActiveQuestionInvalidation(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))
	q := submit(t, s, "s1", "p1", "Alice", "What is X?")

	state, serr := s.SetActiveQuestion("s1", q.ID)
	require.Nil(t, serr)
	require.NotNil(t, state.ActiveQuestionID)
	assert.Equal(t, q.ID, *state.ActiveQuestionID)

	_, state, serr2 := s.MarkAnswered("s1", q.ID, true, nil)
	require.Nil(t, serr2)
	assert.Nil(t, state.ActiveQuestionID,
		"answering the active question must clear the pointer")
}

func TestSetActiveQuestion(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))
	q1 := submit(t, s, "s1", "p1", "Alice", "first")
	q2 := submit(t, s, "s1", "p2", "Bob", "second")

	_, serr := s.SetActiveQuestion("nope", q1.ID)
	require.NotNil(t, serr)
	assert.Equal(t, models.KindNotInitialized, serr.Kind)

	_, serr = s.SetActiveQuestion("s1", "missing")
	require.NotNil(t, serr)
	assert.Equal(t, models.KindNotFound, serr.Kind)

	state, serr := s.SetActiveQuestion("s1", q2.ID)
	require.Nil(t, serr)
	assert.Equal(t, q2.ID, *state.ActiveQuestionID)

	// Empty id is the explicit deactivate path.
	state, serr = s.SetActiveQuestion("s1", "")
	require.Nil(t, serr)
	assert.Nil(t, state.ActiveQuestionID)
}

func TestClearQuestions(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", true))
	q := submit(t, s, "s1", "p1", "Alice", "What is X?")
	_, serr := s.SetActiveQuestion("s1", q.ID)
	require.Nil(t, serr)

	state, serr := s.ClearQuestions("s1")
	require.Nil(t, serr)
	assert.Empty(t, state.Questions)
	assert.Nil(t, state.ActiveQuestionID)
	assert.True(t, state.AllowMultiple, "settings survive a clear")

	_, serr = s.ClearQuestions("never-initialized")
	require.NotNil(t, serr)
	assert.Equal(t, models.KindNotInitialized, serr.Kind)
}

func TestUpdateSettingsCreatesSession(t *testing.T) {
	s := newTestStore()

	state, serr := s.UpdateSettings("fresh", true)
	require.Nil(t, serr)
	assert.True(t, state.AllowMultiple)
	assert.Empty(t, state.Questions)

	state, serr = s.UpdateSettings("fresh", false)
	require.Nil(t, serr)
	assert.False(t, state.AllowMultiple)
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.InitializeSession("s1", false))

	q, _, serr := s.SubmitQuestion(SubmitRequest{
		SlideID: "s1", ParticipantID: "u1", ParticipantName: "Alice", Text: "What is X?",
	})
	require.Nil(t, serr)
	assert.False(t, q.Answered)

	_, _, serr = s.SubmitQuestion(SubmitRequest{
		SlideID: "s1", ParticipantID: "u1", ParticipantName: "Alice", Text: "Another one",
	})
	require.NotNil(t, serr)
	assert.Equal(t, models.KindRateLimited, serr.Kind)

	answer := "X is Y"
	updated, _, serr := s.MarkAnswered("s1", q.ID, true, &answer)
	require.Nil(t, serr)
	assert.True(t, updated.Answered)
	assert.Equal(t, "X is Y", updated.AnswerText)

	state := s.GetState("s1")
	require.Len(t, state.Questions, 1)
	assert.True(t, state.Questions[0].Answered)
	assert.Nil(t, state.ActiveQuestionID)
}
