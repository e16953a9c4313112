package handler

import (
	"errors"
	"log"
	"net/http"

	"casepanel/internal/domain/user"
)

// UserHandler exposes the admin-only user management endpoints
type UserHandler struct {
	userRepo user.Repository
}

func NewUserHandler(userRepo user.Repository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.userRepo.List()
	if err != nil {
		log.Printf("users: list failed: %v", err)
		SendError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	SendSuccess(w, "", responses)
}

// Deactivate handles POST /api/users/deactivate?id=
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// Activate handles POST /api/users/activate?id=
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *UserHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		SendError(w, "User id is required", http.StatusBadRequest)
		return
	}

	// Admins cannot deactivate their own account
	claims := GetClaimsFromContext(r.Context())
	if !active && claims != nil && claims.UserID == id {
		SendError(w, "Cannot deactivate your own account", http.StatusBadRequest)
		return
	}

	if err := h.userRepo.SetActive(id, active); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			SendError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("users: set active failed: %v", err)
		SendError(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	if active {
		SendSuccess(w, "User activated", nil)
	} else {
		SendSuccess(w, "User deactivated", nil)
	}
}
