package middleware

import (
	"context"

	"github.com/priceoptimizer/backend/auth"
)

// Context key type to avoid collisions
type contextKey string

// ClaimsKey is the context key for verified JWT claims
const ClaimsKey contextKey = "claims"

// GetClaimsFromContext retrieves JWT claims from context
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	if val := ctx.Value(ClaimsKey); val != nil {
		if claims, ok := val.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// WithClaims adds JWT claims to the context
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
