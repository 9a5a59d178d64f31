package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
)

// StatsService defines the interface for aggregate queries required by the
// HTTP handlers.
type StatsService interface {
	Stats(ctx context.Context) (*models.Stats, error)
	Assignments(ctx context.Context) ([]models.Assignment, error)
}

// StatsHandler handles the statistics and report endpoints.
type StatsHandler struct {
	// StatsService performs the underlying aggregate queries.
	StatsService StatsService
	// Logger reports unexpected failures.
	Logger *zap.Logger
}

// Stats returns record counts and monetary totals.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.StatsService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": s})
}

// Assignments returns the personnel-to-equipment assignment report.
func (h *StatsHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	report, err := h.StatsService.Assignments(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": report})
}
