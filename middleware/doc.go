// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Helpers

  - WithLogging: wraps a handler with slog request/completion logging
  - JSONResponse / ErrorResponse: JSON encoding with status codes
  - SessionErrorResponse / StatusForKind: session error taxonomy to HTTP
    status mapping (rate limited → 429, duplicate → 409, and so on)
  - ParseJSONBody: request body decoding
  - CORS: cross-origin headers and preflight handling
  - GetClientIP: X-Forwarded-For / X-Real-IP / RemoteAddr extraction
*/
package middleware
