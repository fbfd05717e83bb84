// Package tokens exchanges refresh tokens for access tokens and manages the
// refresh bindings created at login.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-platform/internal/config"
	"blog-platform/internal/refreshtokens"
	"blog-platform/internal/users"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// Codec is the subset of auth.Manager the service needs.
type Codec interface {
	Mint(u users.User, ttl time.Duration) (string, error)
	Validate(token string) bool
}

// Identities resolves the user a binding points at.
type Identities interface {
	ByID(ctx context.Context, id int64) (users.User, error)
}

type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service does not rotate refresh tokens: a refresh token stays valid until it
// expires or its binding is deleted.
type Service struct {
	codec      Codec
	store      refreshtokens.Store
	identities Identities
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(codec Codec, store refreshtokens.Store, identities Identities, cfg config.AuthConfig) *Service {
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = config.DefaultAccessTokenTTL
	}
	refreshTTL := cfg.RefreshTokenTTL
	if refreshTTL <= 0 {
		refreshTTL = config.DefaultRefreshTokenTTL
	}
	return &Service{
		codec:      codec,
		store:      store,
		identities: identities,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// CreateNewAccessToken mints an access token for the owner of refreshToken.
// The token must verify, have a stored binding, and point at an existing user;
// otherwise the error wraps ErrInvalidRefreshToken (and the more specific
// refreshtokens.ErrUnknownRefreshToken or users.ErrUserNotFound when known).
// Infrastructure failures are returned unwrapped.
func (s *Service) CreateNewAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if !s.codec.Validate(refreshToken) {
		return "", ErrInvalidRefreshToken
	}

	binding, err := s.store.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, refreshtokens.ErrUnknownRefreshToken) {
			return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
		}
		return "", fmt.Errorf("lookup refresh binding: %w", err)
	}

	u, err := s.identities.ByID(ctx, binding.UserID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
		}
		return "", fmt.Errorf("resolve user: %w", err)
	}

	return s.codec.Mint(u, s.accessTTL)
}

// IssuePair mints both tokens for u and binds the refresh token, replacing any
// previous binding of u.
func (s *Service) IssuePair(ctx context.Context, u users.User) (Pair, error) {
	access, err := s.codec.Mint(u, s.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.codec.Mint(u, s.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	if err := s.store.Save(ctx, refreshtokens.Binding{UserID: u.ID, RefreshToken: refresh}); err != nil {
		return Pair{}, fmt.Errorf("save refresh binding: %w", err)
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Revoke deletes the user's binding so their refresh token is no longer honored.
// Access tokens already minted stay valid until they expire.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	return s.store.DeleteByUserID(ctx, userID)
}
