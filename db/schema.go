// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// Live session state (Q&A questions, guess counts) is deliberately NOT
// persisted; only presentations, slides, participants, and stateless
// interaction responses are. The SQL sticks to the subset both sqlite and
// postgres accept, with timestamps written from Go.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Presentations
CREATE TABLE IF NOT EXISTS presentation (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    presenter_name TEXT NOT NULL,
    join_code TEXT UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_presentation_join_code ON presentation(join_code);

-- Slides
CREATE TABLE IF NOT EXISTS slide (
    id TEXT PRIMARY KEY,
    presentation_id TEXT NOT NULL REFERENCES presentation(id) ON DELETE CASCADE,
    position INTEGER NOT NULL DEFAULT 0,
    type TEXT NOT NULL CHECK (type IN ('qna', 'multiple_choice', 'word_cloud', 'ranking', 'guess_number')),
    title TEXT,
    settings TEXT NOT NULL DEFAULT '{}',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_slide_presentation_id ON slide(presentation_id);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    presentation_id TEXT NOT NULL REFERENCES presentation(id) ON DELETE CASCADE,
    token TEXT NOT NULL,
    name TEXT,
    ip_hash TEXT,
    joined_at TIMESTAMP NOT NULL,
    PRIMARY KEY (presentation_id, token)
);

-- Responses (stateless interactions only)
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    slide_id TEXT NOT NULL REFERENCES slide(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL,
    answer TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_slide_id ON response(slide_id);
`
