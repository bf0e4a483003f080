package utils

import (
	"strings"
	"testing"
)

const testSecret = "test-secret"

var testClaims = Claims{ID: 42, Email: "admin@example.com", Role: "ADMIN"}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testClaims, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	got, err := VerifyAccessToken(testSecret, tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if got != testClaims {
		t.Errorf("claims = %+v, want %+v", got, testClaims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tok, err := NewRefreshToken(testSecret, testClaims, 7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}

	got, err := VerifyRefreshToken(testSecret, tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if got != testClaims {
		t.Errorf("claims = %+v, want %+v", got, testClaims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	// A negative ttl puts the expiry in the past.
	tok, err := NewAccessToken(testSecret, testClaims, -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, tok); err == nil {
		t.Error("expired token accepted")
	}
}

func TestCrossPathRejected(t *testing.T) {
	access, err := NewAccessToken(testSecret, testClaims, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	refresh, err := NewRefreshToken(testSecret, testClaims, 7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}

	if _, err := VerifyAccessToken(testSecret, refresh); err == nil {
		t.Error("refresh token accepted on the access path")
	}
	if _, err := VerifyRefreshToken(testSecret, access); err == nil {
		t.Error("access token accepted on the refresh path")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testClaims, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken("other-secret", tok); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", strings.Repeat("a.", 3)} {
		if _, err := VerifyAccessToken(testSecret, raw); err == nil {
			t.Errorf("malformed token %q accepted", raw)
		}
	}
}
