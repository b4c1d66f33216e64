// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// joinCodeAlphabet avoids 0/O and 1/I so codes survive being read aloud in
// a lecture hall.
const joinCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const joinCodeLength = 6

// GenerateID creates a random hex ID of the specified byte length.
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates the HMAC-based presenter key for a presentation.
// Deterministic, so it can be re-derived for validation without storage.
func GenerateAdminKey(presentationID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(presentationID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks the presenter key for a presentation in constant
// time.
func ValidateAdminKey(presentationID, adminKey, salt string) error {
	expected := GenerateAdminKey(presentationID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateParticipantToken creates the opaque identifier handed to a joining
// participant. The session core uses it as the author id for rate limiting
// and ownership; it carries no other meaning.
func GenerateParticipantToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate participant token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateJoinCode derives the short code participants type to join a
// presentation. Deterministic per presentation so reconnecting presenters
// keep the same code.
func GenerateJoinCode(presentationID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(presentationID))
	sum := h.Sum(nil)

	code := make([]byte, joinCodeLength)
	for i := 0; i < joinCodeLength; i++ {
		code[i] = joinCodeAlphabet[int(sum[i])%len(joinCodeAlphabet)]
	}
	return string(code)
}

// HashIP creates a salted one-way hash of an IP address for privacy-safe
// abuse tracking.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
