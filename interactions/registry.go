// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"fmt"

	"github.com/slidepulse/slidepulse/guessnumber"
	"github.com/slidepulse/slidepulse/models"
	"github.com/slidepulse/slidepulse/qna"
)

// Registry dispatches normalization and result tallying by slide type. It
// holds the session stores so the qna and guess-number adapters can ensure
// sessions exist before state is read.
type Registry struct {
	qna     *qna.Store
	guesses *guessnumber.Store
}

func NewRegistry(qnaStore *qna.Store, guessStore *guessnumber.Store) *Registry {
	return &Registry{qna: qnaStore, guesses: guessStore}
}

// Supported reports whether slideType accepts direct response submissions.
// Q&A and guess-number slides collect input through their session endpoints
// instead.
func (r *Registry) Supported(slideType string) bool {
	switch slideType {
	case models.TypeMultipleChoice, models.TypeWordCloud, models.TypeRanking:
		return true
	}
	return false
}

// NormalizeAnswer validates and canonicalizes a raw participant answer for a
// stateless interaction. The returned value is what gets persisted.
func (r *Registry) NormalizeAnswer(slide *models.Slide, answer any) (any, error) {
	switch slide.Type {
	case models.TypeMultipleChoice:
		return normalizeMultipleChoice(answer, slide)
	case models.TypeWordCloud:
		return normalizeWordCloud(answer)
	case models.TypeRanking:
		return normalizeRanking(answer, slide)
	}
	return nil, fmt.Errorf("slide type %q does not accept direct responses", slide.Type)
}

// BuildResults computes the presenter-facing tally for a slide. Stateless
// types reduce over the persisted responses; session-backed types project
// their in-memory session state.
func (r *Registry) BuildResults(slide *models.Slide, responses []models.Response) (map[string]any, error) {
	switch slide.Type {
	case models.TypeMultipleChoice:
		return buildMultipleChoiceResults(slide, responses), nil
	case models.TypeWordCloud:
		return buildWordCloudResults(responses), nil
	case models.TypeRanking:
		return buildRankingResults(slide, responses), nil
	case models.TypeQna:
		return r.buildQnaResults(slide), nil
	case models.TypeGuessNumber:
		return buildGuessNumberResults(slide, responses), nil
	}
	return nil, fmt.Errorf("unknown slide type %q", slide.Type)
}

// QnaState projects the Q&A session for a slide.
func (r *Registry) QnaState(slideID string) qna.State {
	return r.qna.GetState(slideID)
}

// GuessState projects the guess-number session for a slide.
func (r *Registry) GuessState(slideID string) guessnumber.State {
	return r.guesses.GetState(slideID)
}

// EnsureSession initializes the in-memory session for session-backed slide
// types. A no-op for stateless types and nil slides.
func (r *Registry) EnsureSession(slide *models.Slide) {
	if slide == nil {
		return
	}
	switch slide.Type {
	case models.TypeQna:
		r.ensureQnaSession(slide)
	case models.TypeGuessNumber:
		r.ensureGuessSession(slide)
	}
}
