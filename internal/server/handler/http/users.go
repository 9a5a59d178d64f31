package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
)

// UsersService defines the interface for user administration required by
// the HTTP handlers.
type UsersService interface {
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
}

// UsersHandler handles admin-only account management endpoints.
type UsersHandler struct {
	// UsersService performs the underlying account operations.
	UsersService UsersService
	// Logger reports unexpected failures.
	Logger *zap.Logger
}

// RoleRequest represents the JSON payload for a role change.
type RoleRequest struct {
	Role models.Role `json:"role"`
}

// List returns all accounts without password hashes.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UsersService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": users})
}

func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// UpdateRole changes an account's role. Removing the last admin is a 409.
func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.UsersService.UpdateRole(r.Context(), id, req.Role); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// Delete removes an account. Removing the last admin is a 409.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.UsersService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}
