package rbac

import (
	"context"
	"errors"

	"blog-platform/internal/auth"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
)

// CurrentPrincipal returns the caller installed by auth.Authenticate.
func CurrentPrincipal(ctx context.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok || p.Email == "" {
		return auth.Principal{}, ErrNotAuthenticated
	}
	return p, nil
}

// AuthorizeAuthor allows the caller only if they wrote the resource.
// author is the resource's stored author email, known after loading it.
func AuthorizeAuthor(ctx context.Context, author string) error {
	p, err := CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	if p.Email != author {
		return ErrNotAuthorized
	}
	return nil
}
