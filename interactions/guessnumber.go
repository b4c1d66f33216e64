// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"strconv"

	"github.com/slidepulse/slidepulse/guessnumber"
	"github.com/slidepulse/slidepulse/models"
)

// ensureGuessSession initializes the guess-number session from the slide's
// settings, falling back to a 1..10 range with 5 as the correct answer when
// unset. Non-guess slides are ignored.
func (r *Registry) ensureGuessSession(slide *models.Slide) {
	if slide == nil || slide.Type != models.TypeGuessNumber {
		return
	}

	settings := guessnumber.Settings{MinValue: 1, MaxValue: 10}
	if gs := slide.Settings.GuessNumber; gs != nil {
		if gs.MinValue != 0 {
			settings.MinValue = gs.MinValue
		}
		if gs.MaxValue != 0 {
			settings.MaxValue = gs.MaxValue
		}
		settings.CorrectAnswer = gs.CorrectAnswer
	}
	if settings.CorrectAnswer == nil {
		five := 5.0
		settings.CorrectAnswer = &five
	}
	_ = r.guesses.InitializeSession(slide.ID, settings)
}

// buildGuessNumberResults tallies the persisted responses into a guess
// distribution, reading range settings straight off the slide.
func buildGuessNumberResults(slide *models.Slide, responses []models.Response) map[string]any {
	distribution := make(map[string]int)
	for _, response := range responses {
		value, ok := numericAnswer(response.Answer)
		if !ok {
			continue
		}
		distribution[strconv.FormatFloat(value, 'f', -1, 64)]++
	}

	minValue, maxValue := 1.0, 10.0
	var correct *float64
	if gs := slide.Settings.GuessNumber; gs != nil {
		if gs.MinValue != 0 {
			minValue = gs.MinValue
		}
		if gs.MaxValue != 0 {
			maxValue = gs.MaxValue
		}
		correct = gs.CorrectAnswer
	}

	return map[string]any{
		"guessNumberState": map[string]any{
			"minValue":      minValue,
			"maxValue":      maxValue,
			"correctAnswer": correct,
			"distribution":  distribution,
		},
	}
}

func numericAnswer(answer any) (float64, bool) {
	if arr, ok := answer.([]any); ok && len(arr) > 0 {
		answer = arr[0]
	}
	switch v := answer.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
