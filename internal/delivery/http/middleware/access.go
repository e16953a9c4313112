package middleware

import (
	"net/http"
	"strings"

	"casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/session"
)

// AccessConfig describes the route protection classes for the edge check.
// Paths are matched by prefix.
type AccessConfig struct {
	// Protected paths require a valid session
	Protected []string
	// AuthOnly paths (login/register) redirect away when already signed in
	AuthOnly []string
	// Skip paths bypass the edge check entirely (static assets, API —
	// the API enforces auth itself and answers 401 instead of redirecting)
	Skip []string
	// LoginPath is where unauthenticated visitors of protected pages land
	LoginPath string
	// HomePath is where signed-in visitors of auth-only pages land
	HomePath string
}

// AccessControl gates every page request before its handler runs. The check
// is stateless: it only verifies the cookie's signature and expiry, never
// touching the database, so it is safe to run on every request.
func AccessControl(codec *auth.TokenCodec, gateway *session.Gateway, cfg AccessConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if hasPrefix(path, cfg.Skip) {
				next.ServeHTTP(w, r)
				return
			}

			authenticated := false
			if token := gateway.Read(r); token != "" {
				if _, err := codec.Decode(token); err == nil {
					authenticated = true
				}
			}

			switch {
			case hasPrefix(path, cfg.Protected) && !authenticated:
				http.Redirect(w, r, cfg.LoginPath, http.StatusSeeOther)
			case hasPrefix(path, cfg.AuthOnly) && authenticated:
				http.Redirect(w, r, cfg.HomePath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
