// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"errors"
	"slices"
	"strings"

	"github.com/slidepulse/slidepulse/models"
)

func normalizeMultipleChoice(answer any, slide *models.Slide) (any, error) {
	trimmed := strings.TrimSpace(firstString(answer))
	if trimmed == "" {
		return nil, errors.New("Please select an answer")
	}
	if opts := slide.Settings.Options; len(opts) > 0 && !slices.Contains(opts, trimmed) {
		return nil, errors.New("Invalid option")
	}
	return trimmed, nil
}

func buildMultipleChoiceResults(slide *models.Slide, responses []models.Response) map[string]any {
	voteCounts := make(map[string]int, len(slide.Settings.Options))
	for _, option := range slide.Settings.Options {
		voteCounts[option] = 0
	}
	for _, r := range responses {
		answer := firstString(r.Answer)
		if _, ok := voteCounts[answer]; ok {
			voteCounts[answer]++
		}
	}
	return map[string]any{"voteCounts": voteCounts}
}

// firstString extracts a string answer, taking the first element of array
// answers.
func firstString(answer any) string {
	switch v := answer.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
