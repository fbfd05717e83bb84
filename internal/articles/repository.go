package articles

import (
	"context"
	"errors"
)

var ErrArticleNotFound = errors.New("article not found")

// Repository is the persistence contract for articles.
//
// Update and Delete load the row, hand it to the callback and only write if
// the callback returns nil; the load and the write are atomic. A callback
// error is returned unchanged and nothing is written.
type Repository interface {
	Create(ctx context.Context, a Article) (Article, error)
	List(ctx context.Context) ([]Article, error)
	FindByID(ctx context.Context, id int64) (Article, error)
	Update(ctx context.Context, id int64, mutate func(*Article) error) (Article, error)
	Delete(ctx context.Context, id int64, check func(Article) error) error
}
