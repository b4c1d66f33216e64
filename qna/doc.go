// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package qna implements the live Q&A session state machine: a per-slide,
in-memory conversation where participants submit questions subject to
per-participant limits, the presenter marks questions answered with optional
reply text, and the presenter can highlight a single active question.

# Store

Store is the process-wide registry of sessions, keyed by slide id. It is an
explicitly owned object: construct one with NewStore in main and inject it
into the transport layer. A single mutex guards the whole map; every
operation reads, validates, mutates, and returns under the lock, so
operations against the same slide observe a total order. GetState also takes
the lock because questions are sorted during the read.

# Invariants

  - No two questions in a session have case-insensitively identical text.
  - A participant has at most one unanswered question outstanding at a time.
  - When allowMultiple is false, a participant has at most one question total
    for the lifetime of the session.
  - Questions are always ordered ascending by submission timestamp.
  - The active-question pointer always references a present question or is
    nil; it is cleared when its question is marked answered.

# Errors

User-triggerable failures (duplicate text, rate limits, unknown question ids,
uninitialized sessions) come back as *models.SessionError values with
display-ready messages, never as panics, so the caller can forward them
straight to the client. Lifecycle operations fail fast with
ErrSlideIDRequired on an empty slide id, which is a programmer error.

# Known quirk

MarkAnswered stamps answeredAt even when a question is explicitly un-marked
(answered=false). The field name implies it should only move on the
transition to answered, but clients have only ever seen the unconditional
stamp, so it is preserved as-is.

# Pushing state

The store performs no I/O. After every mutating call the transport layer is
expected to broadcast the returned State to connected clients.
*/
package qna
