// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package guessnumber implements the in-memory session for guess-the-number
// slides: per-slide range settings, the correct answer, and a count of
// submissions per guessed value. Structurally a simplified sibling of the
// qna store, built on the same mutex-guarded registry pattern.
package guessnumber
