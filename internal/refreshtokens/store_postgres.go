package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore assumes the refresh_tokens table from internal/migrations,
// with UNIQUE (user_id) and UNIQUE (refresh_token).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (Binding, error) {
	const q = `
SELECT user_id, refresh_token
FROM refresh_tokens
WHERE refresh_token = $1
`
	var b Binding
	if err := s.db.QueryRowContext(ctx, q, token).Scan(&b.UserID, &b.RefreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Binding{}, ErrUnknownRefreshToken
		}
		return Binding{}, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) Save(ctx context.Context, b Binding) error {
	if err := validate(b); err != nil {
		return err
	}
	const q = `
INSERT INTO refresh_tokens (user_id, refresh_token)
VALUES ($1, $2)
ON CONFLICT (user_id)
DO UPDATE SET refresh_token = EXCLUDED.refresh_token
`
	if _, err := s.db.ExecContext(ctx, q, b.UserID, b.RefreshToken); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteByUserID(ctx context.Context, userID int64) error {
	const q = `
DELETE FROM refresh_tokens
WHERE user_id = $1
`
	if _, err := s.db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
