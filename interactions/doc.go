// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package interactions implements the per-slide-type behavior behind the
response and results endpoints.

Stateless types (multiple choice, word cloud, ranking) provide two pure
functions: answer normalization, which validates and canonicalizes a raw
participant submission before it is persisted, and result building, a reduce
over the stored responses producing the presenter-facing tally.

Session-backed types (qna, guess_number) delegate to their in-memory stores:
EnsureSession derives session settings from the slide record and initializes
the session, and result building projects the live session state instead of
reducing persisted rows.

Registry ties the two together and is the single dispatch point by slide
type.
*/
package interactions
