// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and key generation for the API.

# Presenter Keys

Admin keys are HMAC-SHA256 over the presentation id with a server-side salt,
so they are verifiable without storing them:

	key := auth.GenerateAdminKey(presentationID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(presentationID, key, cfg.AdminKeySalt)

# Participant Tokens

Random 192-bit tokens handed out on join. The session core treats them as
opaque participant identifiers; no server-side lookup is required.

# Join Codes

Six-character codes over an alphabet without 0/O and 1/I, derived
deterministically from the presentation id and a salt.
*/
package auth
