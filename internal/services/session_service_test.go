package services

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/senyabanana/solosphere/internal/models"
)

func TestSessionService_IssueThenVerify(t *testing.T) {
	s := NewSessionService("testsecret", 0, false)

	token, expiresAt, err := s.Issue(models.Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if d := time.Until(expiresAt); d < DefaultTokenTTL-time.Minute || d > DefaultTokenTTL {
		t.Fatalf("expires in %v, want about %v", d, DefaultTokenTTL)
	}

	identity, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.Email != "a@x.com" {
		t.Fatalf("email = %q", identity.Email)
	}
}

func TestSessionService_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewSessionService("testsecret", 5*time.Hour, false)
	s.now = func() time.Time { return issuedAt }

	token, _, err := s.Issue(models.Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s.now = func() time.Time { return issuedAt.Add(4*time.Hour + 59*time.Minute) }
	if _, err := s.Verify(token); err != nil {
		t.Fatalf("token should be valid inside the window: %v", err)
	}

	s.now = func() time.Time { return issuedAt.Add(5*time.Hour + time.Minute) }
	if _, err := s.Verify(token); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expired token error = %v, want ErrUnauthorized", err)
	}
}

func TestSessionService_RejectsBadTokens(t *testing.T) {
	s := NewSessionService("testsecret", time.Hour, false)
	other := NewSessionService("othersecret", time.Hour, false)
	foreign, _, err := other.Issue(models.Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "Missing", token: ""},
		{name: "Malformed", token: "not-a-jwt"},
		{name: "WrongSignature", token: foreign},
		{name: "Unsigned", token: "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJlbWFpbCI6ImFAeC5jb20iLCJleHAiOjQxMDI0NDQ4MDB9."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Verify(tt.token); !errors.Is(err, models.ErrUnauthorized) {
				t.Fatalf("error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestSessionService_CookiePolicy(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	dev := NewSessionService("s", time.Hour, false).Cookie("tok", expiresAt)
	if dev.Name != SessionCookie || dev.Value != "tok" || !dev.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", dev)
	}
	if dev.Secure || dev.SameSite != http.SameSiteStrictMode {
		t.Fatalf("dev cookie should be strict and not secure: %+v", dev)
	}

	prod := NewSessionService("s", time.Hour, true).Cookie("tok", expiresAt)
	if !prod.Secure || prod.SameSite != http.SameSiteNoneMode {
		t.Fatalf("prod cookie should be secure with SameSite=None: %+v", prod)
	}

	cleared := NewSessionService("s", time.Hour, true).ClearCookie()
	if cleared.Name != SessionCookie || cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Fatalf("unexpected clear cookie: %+v", cleared)
	}
	if !cleared.Secure || cleared.SameSite != http.SameSiteNoneMode {
		t.Fatalf("clear cookie must reuse the issue policy: %+v", cleared)
	}
}
