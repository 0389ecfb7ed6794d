package session

import (
	"context"
	"errors"

	"github.com/sigac/sigac-core/internal/model"
)

// ErrNoSession is returned by a Provider when the context carries no
// usable session.
var ErrNoSession = errors.New("no active session")

// Provider resolves the authenticated principal for a request context.
// Implementations must return ErrNoSession (not a nil principal) when
// nobody is logged in, so callers never branch on nil.
type Provider interface {
	Current(ctx context.Context) (*model.Principal, error)
}

type tokenKey struct{}

// WithToken stores a raw bearer token on the context. The transport
// layer calls this before handing the context to guarded actions.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext retrieves the raw token placed by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
