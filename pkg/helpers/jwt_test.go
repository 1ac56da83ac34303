package helpers

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	m, err := NewJWTManager("s3cret", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TTL != DefaultTokenTTL {
		t.Errorf("expected default ttl, got %v", m.TTL)
	}
}

func TestIssueVerifyWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m, _ := NewJWTManager("s3cret", 3600*time.Second)
	m.WithClock(fixedClock(&now))

	tok, exp, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", exp)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issuance", now, nil},
		{"inside window", now.Add(3599 * time.Second), nil},
		{"at expiry", exp, nil},
		{"within the expiry second", exp.Add(999 * time.Millisecond), nil},
		{"one second past expiry", exp.Add(time.Second), ErrTokenExpired},
		{"long after expiry", exp.Add(24 * time.Hour), ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			sub, err := m.Verify(tok)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && sub != "user-1" {
				t.Fatalf("expected subject user-1, got %q", sub)
			}
		})
	}
}

func TestIssueSubSecondClock(t *testing.T) {
	now := time.Unix(1_700_000_000, 500_000_000)
	m, _ := NewJWTManager("s3cret", 3600*time.Second)
	m.WithClock(fixedClock(&now))

	tok, exp, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	want := time.Unix(1_700_003_600, 0)
	if !exp.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, exp)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(exp) {
		t.Fatalf("returned expiry %v differs from exp claim %v", exp, claims.ExpiresAt.Time)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"just before expiry", time.Unix(1_700_000_000, 0).Add(3599*time.Second + 600*time.Millisecond), nil},
		{"at expiry", exp, nil},
		{"one second past expiry", exp.Add(time.Second), ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			if _, err := m.Verify(tok); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	a, _ := NewJWTManager("secret-a", time.Hour)
	b, _ := NewJWTManager("secret-b", time.Hour)
	tok, _, _ := a.Issue("user-1")
	if _, err := b.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpiredForgeryIsInvalidNotExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	a, _ := NewJWTManager("secret-a", time.Hour)
	a.WithClock(fixedClock(&now))
	b, _ := NewJWTManager("secret-b", time.Hour)
	b.WithClock(fixedClock(&now))

	tok, _, _ := a.Issue("user-1")
	now = now.Add(2 * time.Hour)
	if _, err := b.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign expired token, got %v", err)
	}
}

func TestVerifyRejectsMalformedAndUnsigned(t *testing.T) {
	m, _ := NewJWTManager("s3cret", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).SignedString([]byte("s3cret"))

	tok, _, _ := m.Issue("user-1")
	tampered := tok[:strings.LastIndex(tok, ".")+1] + "AAAA"

	for name, in := range map[string]string{
		"empty":      "",
		"garbage":    "not.a.token",
		"alg none":   unsigned,
		"no expiry":  noExp,
		"bad digest": tampered,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Verify(in); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
