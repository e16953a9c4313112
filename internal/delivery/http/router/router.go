package router

import (
	"net/http"

	"casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/handler"
	"casepanel/internal/delivery/http/middleware"
	"casepanel/internal/delivery/http/session"
	"casepanel/internal/domain/user"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth  *handler.AuthHandler
	User  *handler.UserHandler
	Pages *handler.PageHandler
}

// Config carries the router's middleware settings
type Config struct {
	AllowedOrigins []string
}

// Setup configures all routes and wraps them in the edge access check
func Setup(handlers Handlers, authService auth.Service, codec *auth.TokenCodec, cookies *session.Gateway, cfg Config) http.Handler {
	mux := http.NewServeMux()

	// Middleware helpers
	cors := middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins})
	authRequired := middleware.Auth(authService, cookies)
	adminOnly := middleware.RequireRole(user.RoleAdmin)

	// Chain helper
	chain := func(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}

	// ==================
	// Panel pages (edge-gated)
	// ==================
	mux.HandleFunc("/login", handlers.Pages.Login)
	mux.HandleFunc("/register", handlers.Pages.Register)
	mux.HandleFunc("/logout", handlers.Pages.Logout)
	mux.HandleFunc("/dashboard", handlers.Pages.Dashboard)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// ==================
	// Auth API (public)
	// ==================
	mux.HandleFunc("/api/auth/register", cors(handlers.Auth.Register))
	mux.HandleFunc("/api/auth/login", cors(handlers.Auth.Login))
	mux.HandleFunc("/api/auth/logout", cors(handlers.Auth.Logout))
	mux.HandleFunc("/api/auth/me", chain(handlers.Auth.Me, cors, authRequired))

	// ==================
	// User admin API (protected)
	// ==================
	mux.HandleFunc("/api/users", chain(handlers.User.List, cors, authRequired, adminOnly))
	mux.HandleFunc("/api/users/deactivate", chain(handlers.User.Deactivate, cors, authRequired, adminOnly))
	mux.HandleFunc("/api/users/activate", chain(handlers.User.Activate, cors, authRequired, adminOnly))

	// The edge check runs before any page handler: protected pages bounce
	// anonymous visitors to /login, the sign-in pages bounce signed-in
	// visitors to /dashboard. API routes answer 401 themselves.
	edge := middleware.AccessControl(codec, cookies, middleware.AccessConfig{
		Protected: []string{"/dashboard"},
		AuthOnly:  []string{"/login", "/register"},
		Skip:      []string{"/api", "/static"},
		LoginPath: "/login",
		HomePath:  "/dashboard",
	})

	return edge(mux)
}
