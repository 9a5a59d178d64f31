// Package middleware provides HTTP middlewares for authentication,
// authorization and logging.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/token"
)

type ctxKey string

const identityKey ctxKey = "identity"

// TokenVerifier decodes and validates a bearer token into an identity.
type TokenVerifier interface {
	Verify(tokenString string) (models.Identity, error)
}

func reject(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Authenticate enforces bearer-token authentication.
//
// It extracts the token from the Authorization header ("Bearer <token>"),
// verifies it, and stores the decoded identity in the request context. A
// missing header yields 401 "authentication required"; a malformed or
// expired token yields 401 "invalid or expired token". No store access
// happens on either path. Expired and malformed tokens are logged as
// distinct kinds.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, http.StatusUnauthorized, "authentication required")
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				reject(w, http.StatusUnauthorized, "authentication required")
				return
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					logger.Info("rejected expired token", zap.String("path", r.URL.Path))
				} else {
					logger.Warn("rejected invalid token", zap.String("path", r.URL.Path))
				}
				reject(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces the endpoint's role allow-list. It must run after
// Authenticate. An authenticated identity whose role is not in the list
// yields 403 "insufficient permissions".
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				reject(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range allowed {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			reject(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// IdentityFromContext extracts the authenticated identity stored by
// Authenticate. The second return is false if the request never passed the
// authentication middleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}
