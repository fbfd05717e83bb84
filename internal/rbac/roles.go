package rbac

import "blog-platform/internal/auth"

// Authority names. Keep these stable; they are embedded in principals.
const (
	AuthorityUser = auth.AuthorityUser
)
