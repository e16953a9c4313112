package handler

import (
	"context"

	"casepanel/internal/application/auth"
)

// contextKey is the type for context keys
type contextKey string

// ClaimsContextKey is the key used to store session claims in context
const ClaimsContextKey contextKey = "claims"

// GetClaimsFromContext retrieves the session claims from request context
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
