package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
)

// AuthService defines the interface for authentication operations required
// by the HTTP handlers.
type AuthService interface {
	// Register creates an account with the default read-only role.
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Login verifies credentials and returns a signed token plus the account.
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	// Setup seeds the default accounts; one-time.
	Setup(ctx context.Context, adminPassword, observerPassword string) error
}

// AuthHandler handles registration, login and the one-time bootstrap.
// These endpoints precede the authorization gate entirely.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Logger reports unexpected failures.
	Logger *zap.Logger
}

// CredentialsRequest represents the JSON payload for registration and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupRequest represents the JSON payload for the bootstrap endpoint. Both
// passwords are optional; absent ones fall back to defaults.
type SetupRequest struct {
	AdminPassword    string `json:"admin_password"`
	ObserverPassword string `json:"observer_password"`
}

// Register handles user registration requests. It expects a JSON body with
// "username" and "password"; length rules and duplicate usernames surface
// as 400 and 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login verifies credentials and returns a bearer token. Unknown usernames
// and wrong passwords are indistinguishable 401s.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Setup runs the one-time bootstrap: 409 once any account exists.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	// An empty body is fine; defaults apply.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.AuthService.Setup(r.Context(), req.AdminPassword, req.ObserverPassword); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"accounts": []string{"admin", "observer"},
	})
}
