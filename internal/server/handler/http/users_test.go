package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// fakeUsersService implements UsersService for testing.
type fakeUsersService struct {
	users     []models.User
	listErr   error
	updateErr error
	deleteErr error
}

func (f *fakeUsersService) List(context.Context) ([]models.User, error) {
	return f.users, f.listErr
}
func (f *fakeUsersService) UpdateRole(context.Context, int64, models.Role) error {
	return f.updateErr
}
func (f *fakeUsersService) Delete(context.Context, int64) error { return f.deleteErr }

// usersRouter mounts the handler under chi so URL params resolve.
func usersRouter(h *UsersHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Put("/users/{id}/role", h.UpdateRole)
	r.Delete("/users/{id}", h.Delete)
	return r
}

func TestUsersHandler_UpdateRole(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		body         string
		service      *fakeUsersService
		expectedCode int
	}{
		{
			name:         "bad id",
			target:       "/users/abc/role",
			body:         `{"role":"user"}`,
			service:      &fakeUsersService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing role",
			target:       "/users/1/role",
			body:         `{}`,
			service:      &fakeUsersService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "last admin",
			target:       "/users/1/role",
			body:         `{"role":"user"}`,
			service:      &fakeUsersService{updateErr: store.ErrLastAdmin},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "unknown user",
			target:       "/users/99/role",
			body:         `{"role":"user"}`,
			service:      &fakeUsersService{updateErr: store.ErrNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "success",
			target:       "/users/2/role",
			body:         `{"role":"admin"}`,
			service:      &fakeUsersService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &UsersHandler{UsersService: tt.service, Logger: zap.NewNop()}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", tt.target, bytes.NewBufferString(tt.body))
			usersRouter(h).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUsersHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		service      *fakeUsersService
		expectedCode int
	}{
		{
			name:         "last admin",
			target:       "/users/1",
			service:      &fakeUsersService{deleteErr: store.ErrLastAdmin},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "success",
			target:       "/users/2",
			service:      &fakeUsersService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &UsersHandler{UsersService: tt.service, Logger: zap.NewNop()}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("DELETE", tt.target, nil)
			usersRouter(h).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestUsersHandler_List(t *testing.T) {
	h := &UsersHandler{
		UsersService: &fakeUsersService{users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
		}},
		Logger: zap.NewNop(),
	}
	rec := httptest.NewRecorder()
	usersRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Error("password hashes must never be serialized")
	}
}
