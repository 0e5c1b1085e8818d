package auth

import "context"

// UserContext is the verified identity the rest of the service consumes.
type UserContext struct {
	UserID      string
	Email       string
	AccountType string
	CanSell     bool
}

type contextKey struct{}

func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the authenticated identity, or nil when the request
// carried no valid token.
func FromContext(ctx context.Context) *UserContext {
	user, _ := ctx.Value(contextKey{}).(*UserContext)
	return user
}
