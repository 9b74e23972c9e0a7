package tokens

import (
	"testing"
	"time"
)

func newService() Service {
	return Service{
		Secret:          []byte("test-secret-key-32-bytes-long!!!"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newService()
	now := time.Now().UTC()

	tok, exp, err := s.NewAccessToken("user-1", now)
	if err != nil {
		t.Fatalf("new access token: %v", err)
	}
	if !exp.Equal(now.Add(s.AccessTokenTTL)) {
		t.Fatalf("expected exp %s, got %s", now.Add(s.AccessTokenTTL), exp)
	}

	claims, err := s.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject 'user-1', got %q", claims.Subject)
	}
}

func TestAccessToken_MissingSecret(t *testing.T) {
	s := Service{AccessTokenTTL: time.Minute}
	if _, _, err := s.NewAccessToken("user-1", time.Now()); err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestAccessToken_Expired(t *testing.T) {
	s := newService()
	tok, _, err := s.NewAccessToken("user-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("new access token: %v", err)
	}
	if _, err := s.ParseAccessToken(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAccessToken_WrongSecret(t *testing.T) {
	s := newService()
	tok, _, err := s.NewAccessToken("user-1", time.Now())
	if err != nil {
		t.Fatalf("new access token: %v", err)
	}
	other := newService()
	other.Secret = []byte("another-secret")
	if _, err := other.ParseAccessToken(tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	raw, hash, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("expected non-empty token and hash")
	}
	if HashRefreshToken(raw) != hash {
		t.Fatal("expected hash to be reproducible from the raw token")
	}

	raw2, _, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}
	if raw == raw2 {
		t.Fatal("expected distinct tokens")
	}
}
