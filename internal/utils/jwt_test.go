package utils

import (
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret", time.Hour)
	userID := "user-123"

	tok, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gotUserID, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", -1*time.Second)

	tok, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = issuer.Verify(tok)
	if err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	right := NewTokenIssuer("right-secret", time.Hour)
	wrong := NewTokenIssuer("wrong-secret", time.Hour)

	tok, err := right.Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = wrong.Verify(tok)
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k", time.Hour)
	if _, err := issuer.Verify("not.a.jwt"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}
