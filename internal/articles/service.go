package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog-platform/internal/auth"
	"blog-platform/internal/rbac"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Service provides blog operations.
//
// Only the author may update or delete an article.
// The check runs inside the repository's atomic load-and-write, against the
// stored author field.
type Service struct {
	repo Repository
	// clock is injectable for deterministic tests.
	clock auth.Clock
}

func NewService(repo Repository, clock auth.Clock) *Service {
	if clock == nil {
		clock = auth.SystemClock
	}
	return &Service{repo: repo, clock: clock}
}

// Create stores an article written by the current principal.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Article, error) {
	p, err := rbac.CurrentPrincipal(ctx)
	if err != nil {
		return Article{}, err
	}
	if err := validateContent(req.Title, req.Content); err != nil {
		return Article{}, err
	}
	now := s.clock()
	return s.repo.Create(ctx, Article{
		Author:    p.Email,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) List(ctx context.Context) ([]Article, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Article, error) {
	return s.repo.FindByID(ctx, id)
}

// Update replaces title and content. Fails with rbac.ErrNotAuthenticated or
// rbac.ErrNotAuthorized, leaving the article unchanged.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Article, error) {
	if err := validateContent(req.Title, req.Content); err != nil {
		return Article{}, err
	}
	return s.repo.Update(ctx, id, func(a *Article) error {
		if err := rbac.AuthorizeAuthor(ctx, a.Author); err != nil {
			return err
		}
		a.Title = req.Title
		a.Content = req.Content
		a.UpdatedAt = s.clock()
		return nil
	})
}

// Delete removes the article if the current principal wrote it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id, func(a Article) error {
		return rbac.AuthorizeAuthor(ctx, a.Author)
	})
}

func validateContent(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title required", ErrInvalidArgument)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content required", ErrInvalidArgument)
	}
	return nil
}
