// Package refreshtokens stores the (user, refresh token) bindings that decide
// which refresh tokens are honored. A user has at most one binding; saving a
// new one replaces the previous token.
package refreshtokens

import (
	"context"
	"errors"
)

var ErrUnknownRefreshToken = errors.New("unknown refresh token")

// Binding associates a user with their active refresh token.
type Binding struct {
	UserID       int64  `json:"user_id" db:"user_id"`
	RefreshToken string `json:"refresh_token" db:"refresh_token"`
}

// Store is the persistence contract for bindings.
type Store interface {
	// FindByToken returns ErrUnknownRefreshToken when no binding holds token.
	FindByToken(ctx context.Context, token string) (Binding, error)
	// Save upserts by UserID.
	Save(ctx context.Context, b Binding) error
	// DeleteByUserID is idempotent.
	DeleteByUserID(ctx context.Context, userID int64) error
}

func validate(b Binding) error {
	if b.UserID <= 0 || b.RefreshToken == "" {
		return errors.New("refreshtokens: user_id and refresh_token required")
	}
	return nil
}
