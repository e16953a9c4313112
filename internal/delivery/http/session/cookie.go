package session

import (
	"net/http"
	"time"
)

// CookieName is the session cookie written on login
const CookieName = "session"

// Gateway reads and writes the signed session token on the transport layer.
// It carries no business logic.
type Gateway struct {
	// Secure marks the cookie HTTPS-only; enabled in production
	Secure bool
}

func NewGateway(secure bool) *Gateway {
	return &Gateway{Secure: secure}
}

// Write sets the session cookie carrying the signed token
func (g *Gateway) Write(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   g.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the raw token from the request cookie, or "" if absent
func (g *Gateway) Read(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Clear expires the session cookie. Safe to call when no session exists.
func (g *Gateway) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
