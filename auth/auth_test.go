// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex chars for 16 bytes, got %d", len(id))
	}

	other, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == other {
		t.Error("two generated IDs should not collide")
	}
}

func TestAdminKeyRoundTrip(t *testing.T) {
	const salt = "test-salt"

	key := GenerateAdminKey("pres-1", salt)
	if key == "" {
		t.Fatal("expected non-empty admin key")
	}

	if err := ValidateAdminKey("pres-1", key, salt); err != nil {
		t.Errorf("valid key rejected: %v", err)
	}
	if err := ValidateAdminKey("pres-2", key, salt); err == nil {
		t.Error("key for a different presentation must be rejected")
	}
	if err := ValidateAdminKey("pres-1", key, "other-salt"); err == nil {
		t.Error("key under a different salt must be rejected")
	}
	if err := ValidateAdminKey("pres-1", "garbage", salt); err == nil {
		t.Error("garbage key must be rejected")
	}
}

func TestAdminKeyDeterministic(t *testing.T) {
	const salt = "test-salt"
	if GenerateAdminKey("pres-1", salt) != GenerateAdminKey("pres-1", salt) {
		t.Error("admin keys must be deterministic")
	}
}

func TestGenerateParticipantToken(t *testing.T) {
	token, err := GenerateParticipantToken()
	if err != nil {
		t.Fatalf("GenerateParticipantToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token should be URL-safe, got %q", token)
	}

	other, _ := GenerateParticipantToken()
	if token == other {
		t.Error("two tokens should not collide")
	}
}

func TestGenerateJoinCode(t *testing.T) {
	const salt = "test-salt"

	code := GenerateJoinCode("pres-1", salt)
	if len(code) != 6 {
		t.Fatalf("expected 6-char join code, got %q", code)
	}
	for _, r := range code {
		if strings.ContainsRune("01OI", r) {
			t.Errorf("join code contains ambiguous character %q", r)
		}
	}

	if code != GenerateJoinCode("pres-1", salt) {
		t.Error("join codes must be deterministic per presentation")
	}
	if code == GenerateJoinCode("pres-2", salt) {
		t.Error("different presentations should get different codes")
	}
}

func TestHashIP(t *testing.T) {
	const salt = "test-salt"

	h1 := HashIP("192.0.2.1", salt)
	h2 := HashIP("192.0.2.1", salt)
	h3 := HashIP("192.0.2.2", salt)

	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if h1 == h3 {
		t.Error("different IPs should hash differently")
	}
	if len(h1) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(h1))
	}
	if h1 == "192.0.2.1" || strings.Contains(h1, "192") {
		t.Error("hash must not leak the raw IP")
	}
}
