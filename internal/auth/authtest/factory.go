// Package authtest builds signed tokens with arbitrary claims for tests.
package authtest

import (
	"testing"
	"time"

	"blog-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Factory describes a token to sign.
type Factory struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    map[string]any
}

const DefaultSubject = "test@test.com"

// WithDefaults returns a factory for a token issued at now that expires in 14 days.
func WithDefaults(now time.Time) Factory {
	return Factory{
		Subject:   DefaultSubject,
		IssuedAt:  now,
		ExpiresAt: now.Add(14 * 24 * time.Hour),
	}
}

// Sign signs the token with cfg's secret and issuer.
func (f Factory) Sign(cfg config.AuthConfig) (string, error) {
	return f.SignWithKey(cfg.Issuer, []byte(cfg.SecretKey))
}

func (f Factory) SignWithKey(issuer string, key []byte) (string, error) {
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": f.Subject,
		"iat": jwt.NewNumericDate(f.IssuedAt),
		"exp": jwt.NewNumericDate(f.ExpiresAt),
	}
	for k, v := range f.Claims {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// MustSign is Sign for tests.
func (f Factory) MustSign(t testing.TB, cfg config.AuthConfig) string {
	t.Helper()
	s, err := f.Sign(cfg)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return s
}
