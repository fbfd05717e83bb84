package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepo assumes the users table from internal/migrations.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Create(ctx context.Context, u User) (User, error) {
	const q = `
INSERT INTO users (email, password_hash)
VALUES ($1, $2)
RETURNING id, created_at
`
	if err := r.db.QueryRowContext(ctx, q, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, email, password_hash, created_at
FROM users
WHERE email = $1
`
	return r.scanOne(ctx, q, email)
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (User, error) {
	const q = `
SELECT id, email, password_hash, created_at
FROM users
WHERE id = $1
`
	return r.scanOne(ctx, q, id)
}

func (r *PostgresRepo) scanOne(ctx context.Context, q string, arg any) (User, error) {
	var u User
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
