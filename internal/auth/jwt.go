package auth

import (
	"errors"
	"fmt"
	"time"

	"blog-platform/internal/config"
	"blog-platform/internal/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// Manager mints and parses HS256 tokens. It holds no mutable state and
// never consults a store.
type Manager struct {
	secret []byte
	issuer string
	clock  Clock
}

func NewManager(cfg config.AuthConfig, clock Clock) (*Manager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	if clock == nil {
		clock = SystemClock
	}

	return &Manager{
		secret: []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
		clock:  clock,
	}, nil
}

/* ===================== MINT ===================== */

// Mint signs a token for u that expires ttl from now. exp is carried in whole
// seconds and rounded up, so a token is never rejected before now+ttl.
func (m *Manager) Mint(u users.User, ttl time.Duration) (string, error) {
	now := m.clock()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(ttl))),
			ID:        uuid.NewString(),
		},
		UserID: u.ID,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); !r.Equal(t) {
		return r.Add(time.Second)
	}
	return t
}

/* ===================== PARSE ===================== */

// Parse verifies signature and expiry against the manager's clock and returns
// the claims. iss and iat are carried but not enforced, so instances with
// skewed clocks still accept each other's tokens. Errors are one of
// ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired, wrapping the
// parser's cause.
func (m *Manager) Parse(tokenString string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}

	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	return claims, nil
}

// Validate reports whether the token is signed with our key and not expired.
func (m *Manager) Validate(tokenString string) bool {
	_, err := m.Parse(tokenString)
	return err == nil
}

// Authentication builds the principal a validated token represents.
func (m *Manager) Authentication(tokenString string) (Principal, error) {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return Principal{}, err
	}
	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("%w: sub missing", ErrTokenMalformed)
	}
	return Principal{
		UserID:      claims.UserID,
		Email:       claims.Subject,
		Authorities: []string{AuthorityUser},
	}, nil
}

// UserID returns the "id" claim.
func (m *Manager) UserID(tokenString string) (int64, error) {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: id missing", ErrTokenMalformed)
	}
	return claims.UserID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
