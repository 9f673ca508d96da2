package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndAuthorize(t *testing.T) {
	a := NewAuthenticator("secret")

	token, err := a.IssueToken("s1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := a.Authorize(token, "s1")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if claims.SessionID != "s1" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := a.Authorize(token, "s2"); !errors.Is(err, ErrWrongSession) {
		t.Fatalf("expected ErrWrongSession, got %v", err)
	}
}

func TestUnscopedTokenCoversEverySession(t *testing.T) {
	a := NewAuthenticator("secret")
	token, err := a.IssueToken("", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	for _, id := range []string{"s1", "s2"} {
		if _, err := a.Authorize(token, id); err != nil {
			t.Fatalf("authorize %s: %v", id, err)
		}
	}
}

func TestAuthorizeRejects(t *testing.T) {
	a := NewAuthenticator("secret")
	expired := NewAuthenticator("secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.IssueToken("s1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, err := NewAuthenticator("other").IssueToken("s1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", old},
		{"wrong secret", foreign},
		{"garbage", "not-a-token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Authorize(tt.token, "s1"); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestEmptySecretDisablesAuth(t *testing.T) {
	if NewAuthenticator("") != nil {
		t.Fatalf("expected nil authenticator for empty secret")
	}
}
