package utils

import (
	"testing"
	"time"
)

func TestNewSessionToken_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken("super-secret", 42, 60)
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("expected a non-empty token")
	}
	if remaining := time.Until(tok.Exp); remaining < 55*time.Minute {
		t.Fatalf("expiry too close: %s", remaining)
	}

	uid, err := ParseSessionToken("super-secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if uid != 42 {
		t.Fatalf("subject mismatch: got %d want 42", uid)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken("secret", 7, -1)
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}
	if _, err := ParseSessionToken("secret", tok.Token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken("right-secret", 7, 60)
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}
	if _, err := ParseSessionToken("wrong-secret", tok.Token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestParseSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "garbage", "not.a.jwt"} {
		if _, err := ParseSessionToken("k", raw); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}
