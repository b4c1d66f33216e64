// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

# Tables

  - presentation: id, title, presenter_name, join_code, created_at
  - slide: id, presentation_id, position, type, title, settings (JSON text)
  - participant: presentation_id, token, name, joined_at
  - response: id, slide_id, participant_id, answer (JSON text), submitted_at

# Portability

The schema works on both sqlite (modernc.org/sqlite, the default) and
postgres (lib/pq). Column defaults that differ across engines are avoided;
timestamps are always supplied by the application.

Live Q&A and guess-number session state is in-memory only and has no tables
here.
*/
package db
