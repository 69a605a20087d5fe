package utils

import (
	"testing"
	"time"
)

const (
	testIssuer  = "imagekeep-test"
	testSignKey = "test-sign-key"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 42, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token.SignedString == "" {
		t.Fatal("expected non-empty signed string")
	}

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("expected UserID=42, got %d", parsed.UserID)
	}
	if parsed.Subject != "42" {
		t.Errorf("expected claims subject %q, got %q", "42", parsed.Subject)
	}
	if parsed.Issuer != testIssuer {
		t.Errorf("expected claims issuer %q, got %q", testIssuer, parsed.Issuer)
	}
}

// The parsed model must carry its registered claims, not just the cached
// UserID, so the subject accessor keeps working on both sides of a round trip.
func TestTokenSubjectAccessorAfterRoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 99, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if id, err := token.GetUserID(); err != nil || id != 99 {
		t.Fatalf("generated token GetUserID: got (%d, %v), want (99, nil)", id, err)
	}

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if id, err := parsed.GetUserID(); err != nil || id != 99 {
		t.Fatalf("parsed token GetUserID: got (%d, %v), want (99, nil)", id, err)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	if _, err := GenerateJWTToken("", 1, time.Hour, testSignKey); err == nil {
		t.Error("expected error for empty issuer")
	}
	if _, err := GenerateJWTToken(testIssuer, 1, 0, testSignKey); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := GenerateJWTToken(testIssuer, 1, time.Hour, ""); err == nil {
		t.Error("expected error for empty sign key")
	}
}

func TestValidateJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 7, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, "other-key", testIssuer); err == nil {
		t.Fatal("expected validation error with wrong sign key")
	}
}

func TestValidateJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 7, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, "someone-else"); err == nil {
		t.Fatal("expected validation error with wrong issuer")
	}
}

func TestValidateJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 7, -time.Minute, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer); err == nil {
		t.Fatal("expected validation error for expired token")
	}
}

func TestParseUserIDFromJWT(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 1337, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	id, err := ParseUserIDFromJWT(token.SignedString)
	if err != nil {
		t.Fatalf("unexpected error parsing user id: %v", err)
	}
	if id != 1337 {
		t.Errorf("expected 1337, got %d", id)
	}
}
