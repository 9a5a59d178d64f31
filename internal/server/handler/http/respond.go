// Package http provides the HTTP handlers and routing for the records API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/service"
	"github.com/milrecord/milrecord/internal/store"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess writes the success envelope, merging the payload fields next
// to "success": true.
func writeSuccess(w http.ResponseWriter, code int, payload map[string]any) {
	if payload == nil {
		payload = make(map[string]any, 1)
	}
	payload["success"] = true
	writeJSON(w, code, payload)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceError maps typed service and store errors to response codes.
// Unexpected errors are logged with detail and returned as a generic 500;
// internal detail never reaches the response body.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrSetupDone):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, store.ErrNotFound.Error())
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "a record with that identifier already exists")
	case errors.Is(err, store.ErrLastAdmin):
		writeError(w, http.StatusConflict, store.ErrLastAdmin.Error())
	case errors.Is(err, store.ErrAgeRange):
		writeError(w, http.StatusBadRequest, store.ErrAgeRange.Error())
	case errors.Is(err, store.ErrForeignKey):
		writeError(w, http.StatusBadRequest, store.ErrForeignKey.Error())
	case errors.Is(err, store.ErrCheck):
		writeError(w, http.StatusBadRequest, store.ErrCheck.Error())
	default:
		logger.Error("unexpected error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
