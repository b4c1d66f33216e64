// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/slidepulse/slidepulse/models"
)

// RankedItem is one row of a ranking tally, ordered best-first.
type RankedItem struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	Score           int      `json:"score"`
	AveragePosition *float64 `json:"averagePosition"`
	ResponseCount   int      `json:"responseCount"`
}

// ensureRankingItems returns the slide's configured items with trimmed
// labels, dropping entries without a label and generating ids where blank.
func ensureRankingItems(slide *models.Slide) []models.RankingItem {
	var items []models.RankingItem
	for _, item := range slide.Settings.RankingItems {
		label := strings.TrimSpace(item.Label)
		if label == "" {
			continue
		}
		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, models.RankingItem{ID: id, Label: label})
	}
	return items
}

func normalizeRanking(answer any, slide *models.Slide) (any, error) {
	items := ensureRankingItems(slide)
	if len(items) == 0 {
		return nil, errors.New("Ranking items are not configured")
	}

	allowed := make(map[string]bool, len(items))
	for _, item := range items {
		allowed[item.ID] = true
	}

	raw, ok := answer.([]any)
	if !ok {
		if ss, isStrings := answer.([]string); isStrings {
			raw = make([]any, len(ss))
			for i, s := range ss {
				raw[i] = s
			}
		} else {
			return nil, errors.New("Ranking answer must be an ordered list of item IDs")
		}
	}

	var sanitized []string
	seen := make(map[string]bool)
	for _, entry := range raw {
		s, isString := entry.(string)
		if !isString {
			continue
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		if !allowed[trimmed] {
			return nil, errors.New("Ranking contains an unknown item")
		}
		sanitized = append(sanitized, trimmed)
		seen[trimmed] = true
	}

	if len(sanitized) == 0 {
		return nil, errors.New("Please rank at least one item")
	}
	return sanitized, nil
}

func buildRankingResults(slide *models.Slide, responses []models.Response) map[string]any {
	items := ensureRankingItems(slide)
	itemCount := len(items)

	type tally struct {
		score         int
		count         int
		totalPosition int
	}
	tallies := make(map[string]*tally, itemCount)
	for _, item := range items {
		tallies[item.ID] = &tally{}
	}

	for _, response := range responses {
		for index, id := range rankedIDs(response.Answer) {
			entry, ok := tallies[id]
			if !ok {
				continue
			}
			entry.score += itemCount - index
			entry.count++
			entry.totalPosition += index + 1
		}
	}

	ranked := make([]RankedItem, 0, itemCount)
	for _, item := range items {
		entry := tallies[item.ID]
		row := RankedItem{
			ID:            item.ID,
			Label:         item.Label,
			Score:         entry.score,
			ResponseCount: entry.count,
		}
		if entry.count > 0 {
			avg := math.Round(float64(entry.totalPosition)/float64(entry.count)*100) / 100
			row.AveragePosition = &avg
		}
		ranked = append(ranked, row)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		a, b := ranked[i].AveragePosition, ranked[j].AveragePosition
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})

	return map[string]any{"rankingResults": ranked}
}

func rankedIDs(answer any) []string {
	switch v := answer.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	}
	return nil
}
