package middleware

import (
	"context"
	"net/http"
	"strings"

	"casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/handler"
	"casepanel/internal/delivery/http/session"
	"casepanel/internal/domain/user"
)

// Auth middleware validates the session and adds its claims to the context
func Auth(authService auth.Service, gateway *session.Gateway) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := authService.Session(extractToken(r, gateway))
			if claims == nil {
				handler.SendError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handler.ClaimsContextKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole middleware checks if the session has one of the required roles
func RequireRole(roles ...user.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := handler.GetClaimsFromContext(r.Context())
			if claims == nil {
				handler.SendError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next(w, r)
					return
				}
			}

			handler.SendError(w, "Insufficient permissions", http.StatusForbidden)
		}
	}
}

func extractToken(r *http.Request, gateway *session.Gateway) string {
	// Session cookie is the primary carrier
	if token := gateway.Read(r); token != "" {
		return token
	}

	// Bearer header for non-browser API clients
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
