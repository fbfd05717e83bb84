package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-platform/pkg/storage"
)

// PostgresRepo assumes the articles table from internal/migrations.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const articleColumns = `id, author, title, content, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (Article, error) {
	var a Article
	err := row.Scan(
		&a.ID,
		&a.Author,
		&a.Title,
		&a.Content,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r *PostgresRepo) Create(ctx context.Context, a Article) (Article, error) {
	const q = `
INSERT INTO articles (author, title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + articleColumns
	out, err := scanArticle(r.db.QueryRowContext(ctx, q, a.Author, a.Title, a.Content, a.CreatedAt, a.UpdatedAt))
	if err != nil {
		return Article{}, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	a, err := scanArticle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Article{}, ErrArticleNotFound
		}
		return Article{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// lockArticle serializes concurrent mutations of one article.
func lockArticle(ctx context.Context, tx *sql.Tx, id int64) (Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1 FOR UPDATE`
	a, err := scanArticle(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Article{}, ErrArticleNotFound
		}
		return Article{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, mutate func(*Article) error) (Article, error) {
	var out Article
	err := storage.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		a, err := lockArticle(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(&a); err != nil {
			return err
		}

		const q = `
UPDATE articles
SET title = $2, content = $3, updated_at = $4
WHERE id = $1
RETURNING ` + articleColumns
		out, err = scanArticle(tx.QueryRowContext(ctx, q, id, a.Title, a.Content, a.UpdatedAt))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	return out, err
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64, check func(Article) error) error {
	return storage.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		a, err := lockArticle(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := check(a); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}
