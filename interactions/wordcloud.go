// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slidepulse/slidepulse/models"
)

const maxWordLength = 20

// sanitizeWord lowercases and strips everything outside [a-z0-9].
func sanitizeWord(in string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, in)
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func normalizeWordCloud(answer any) (any, error) {
	var rawTokens []string
	switch v := answer.(type) {
	case []any:
		for _, t := range v {
			if s, ok := t.(string); ok {
				rawTokens = append(rawTokens, s)
			}
		}
	case []string:
		rawTokens = v
	case string:
		rawTokens = strings.FieldsFunc(v, func(r rune) bool { return !isAlphanumeric(r) })
	}

	var sanitized []string
	for _, token := range rawTokens {
		word := sanitizeWord(token)
		if word == "" {
			continue
		}
		if len(word) > maxWordLength {
			return nil, fmt.Errorf("Words must be %d characters or fewer", maxWordLength)
		}
		sanitized = append(sanitized, word)
	}

	if len(sanitized) == 0 {
		return nil, errors.New("Please enter at least one valid word")
	}
	return sanitized, nil
}

func buildWordCloudResults(responses []models.Response) map[string]any {
	wordFrequencies := make(map[string]int)
	for _, r := range responses {
		var words []string
		switch v := r.Answer.(type) {
		case []any:
			for _, w := range v {
				if s, ok := w.(string); ok {
					words = append(words, s)
				}
			}
		case []string:
			words = v
		case string:
			words = []string{v}
		}
		for _, w := range words {
			word := sanitizeWord(w)
			if word == "" {
				continue
			}
			wordFrequencies[word]++
		}
	}
	return map[string]any{"wordFrequencies": wordFrequencies}
}
