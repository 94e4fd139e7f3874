package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer("secret", "hotel-ops")
	now := time.Now()
	raw, err := iss.Issue("sess-1", "user-1", "staff", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := iss.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.SessionID != "sess-1" || claims.Subject != "user-1" || claims.Kind != "staff" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer("secret", "hotel-ops")
	now := time.Now()

	expired, err := iss.Issue("sess-1", "user-1", "staff", now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other, err := NewTokenIssuer("other", "hotel-ops").Issue("sess-1", "user-1", "staff", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for name, raw := range map[string]string{"expired": expired, "wrong key": other, "garbage": "a.b.c"} {
		if _, err := iss.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("HOTEL_OPS_TEST_BOOL", "true")
	t.Setenv("HOTEL_OPS_TEST_DUR", "90m")
	t.Setenv("HOTEL_OPS_TEST_BAD", "soon")

	if !EnvBool("HOTEL_OPS_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	if got := EnvDuration("HOTEL_OPS_TEST_DUR", time.Hour); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", got)
	}
	if got := EnvDuration("HOTEL_OPS_TEST_BAD", time.Hour); got != time.Hour {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := EnvOrDefault("HOTEL_OPS_TEST_MISSING", "x"); got != "x" {
		t.Fatalf("expected default, got %q", got)
	}
	if got := SplitList(" a, ,b "); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split %v", got)
	}

	tok, err := GenerateSecureToken(16)
	if err != nil || len(tok) != 32 || strings.Trim(tok, "0123456789abcdef") != "" {
		t.Fatalf("unexpected token %q err=%v", tok, err)
	}
}
