package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepo writes to the insert-only audit_events table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, type, actor_user_id, actor_email, ip_address, article_id, message, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		string(e.Type),
		nullInt(e.ActorUserID),
		e.ActorEmail,
		e.IPAddress,
		nullInt(e.ArticleID),
		e.Message,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}
