// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"testing"

	"github.com/slidepulse/slidepulse/models"
)

func mcSlide(options ...string) *models.Slide {
	return &models.Slide{
		ID:   "slide-mc",
		Type: models.TypeMultipleChoice,
		Settings: models.SlideSettings{
			Options: options,
		},
	}
}

func TestNormalizeMultipleChoice(t *testing.T) {
	slide := mcSlide("Red", "Green", "Blue")

	tests := []struct {
		name    string
		answer  any
		want    string
		wantErr string
	}{
		{name: "plain string", answer: "Red", want: "Red"},
		{name: "whitespace trimmed", answer: "  Green  ", want: "Green"},
		{name: "first element of array", answer: []any{"Blue", "Red"}, want: "Blue"},
		{name: "empty", answer: "", wantErr: "Please select an answer"},
		{name: "whitespace only", answer: "   ", wantErr: "Please select an answer"},
		{name: "unknown option", answer: "Purple", wantErr: "Invalid option"},
		{name: "non-string", answer: 42.0, wantErr: "Please select an answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeMultipleChoice(tt.answer, slide)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildMultipleChoiceResults(t *testing.T) {
	slide := mcSlide("Red", "Green", "Blue")
	responses := []models.Response{
		{Answer: "Red"},
		{Answer: "Red"},
		{Answer: []any{"Green"}},
		{Answer: "Purple"}, // not a configured option, ignored
	}

	results := buildMultipleChoiceResults(slide, responses)
	counts := results["voteCounts"].(map[string]int)

	if counts["Red"] != 2 {
		t.Errorf("expected 2 votes for Red, got %d", counts["Red"])
	}
	if counts["Green"] != 1 {
		t.Errorf("expected 1 vote for Green, got %d", counts["Green"])
	}
	if counts["Blue"] != 0 {
		t.Errorf("expected 0 votes for Blue, got %d", counts["Blue"])
	}
	if _, ok := counts["Purple"]; ok {
		t.Error("unconfigured option must not appear in counts")
	}
}
