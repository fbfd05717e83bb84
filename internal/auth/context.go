package auth

import "context"

type ctxKey int

const (
	ctxPrincipal ctxKey = iota
	ctxCredentials
)

// WithPrincipal installs the caller's identity for the rest of the request.
// credentials is the bearer token the principal was derived from.
func WithPrincipal(ctx context.Context, p Principal, credentials string) context.Context {
	ctx = context.WithValue(ctx, ctxPrincipal, p)
	ctx = context.WithValue(ctx, ctxCredentials, credentials)
	return ctx
}

// PrincipalFrom returns the principal installed by the auth filter, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

// Credentials returns the bearer token retained alongside the principal.
func Credentials(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(ctxCredentials).(string)
	return s, ok && s != ""
}
