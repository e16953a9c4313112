package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/session"
	"casepanel/internal/domain/user"
)

// AuthHandler exposes the JSON auth endpoints used by the panel frontend
type AuthHandler struct {
	service auth.Service
	cookies *session.Gateway
}

func NewAuthHandler(service auth.Service, cookies *session.Gateway) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Register(req)
	if err != nil {
		var fieldErrs user.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			SendFieldErrors(w, fieldErrs)
		case errors.Is(err, user.ErrUsernameTaken):
			SendError(w, "Username already taken", http.StatusConflict)
		default:
			log.Printf("auth: register failed: %v", err)
			SendError(w, "Failed to register user", http.StatusInternalServerError)
		}
		return
	}

	SendSuccess(w, "User registered successfully", newUser.ToResponse())
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingFields):
			SendError(w, "Username and password are required", http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidCredentials):
			SendError(w, "Invalid username or password", http.StatusUnauthorized)
		default:
			log.Printf("auth: login failed: %v", err)
			SendError(w, "Failed to login", http.StatusInternalServerError)
		}
		return
	}

	h.cookies.Write(w, result.Token, result.ExpiresAt)
	SendSuccess(w, "Login successful", map[string]any{
		"expiresAt": result.ExpiresAt.Unix(),
	})
}

// Logout handles POST /api/auth/logout. Clearing is unconditional, so
// logging out without a session is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.cookies.Clear(w)
	SendSuccess(w, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		SendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	SendSuccess(w, "", map[string]any{
		"id":       claims.UserID,
		"username": claims.Username,
		"name":     claims.Name,
		"role":     claims.Role,
	})
}
