package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
)

// PersonnelService defines the interface for personnel record operations
// required by the HTTP handlers.
type PersonnelService interface {
	ListServing(ctx context.Context) ([]models.ServingPersonnel, error)
	GetServing(ctx context.Context, serviceID string) (*models.ServingPersonnel, error)
	CreateServing(ctx context.Context, p models.ServingPersonnel) error
	UpdateServing(ctx context.Context, p models.ServingPersonnel) error
	DeleteServing(ctx context.Context, serviceID string) error

	ListRetired(ctx context.Context) ([]models.RetiredPersonnel, error)
	GetRetired(ctx context.Context, serviceID string) (*models.RetiredPersonnel, error)
	CreateRetired(ctx context.Context, p models.RetiredPersonnel) error
	UpdateRetired(ctx context.Context, p models.RetiredPersonnel) error
	DeleteRetired(ctx context.Context, serviceID string) error
}

// PersonnelHandler handles serving- and retired-personnel endpoints.
type PersonnelHandler struct {
	// PersonnelService performs the underlying record operations.
	PersonnelService PersonnelService
	// Logger reports unexpected failures.
	Logger *zap.Logger
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ListServing returns all serving personnel.
func (h *PersonnelHandler) ListServing(w http.ResponseWriter, r *http.Request) {
	personnel, err := h.PersonnelService.ListServing(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": personnel})
}

// GetServing returns one serving member by service ID.
func (h *PersonnelHandler) GetServing(w http.ResponseWriter, r *http.Request) {
	p, err := h.PersonnelService.GetServing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": p})
}

func (h *PersonnelHandler) decodeServing(w http.ResponseWriter, r *http.Request) (*models.ServingPersonnel, bool) {
	var p models.ServingPersonnel
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return nil, false
	}
	if p.Name == "" || p.Rank == "" || !validDate(p.DateOfBirth) {
		writeError(w, http.StatusBadRequest, "name, rank and date_of_birth (YYYY-MM-DD) are required")
		return nil, false
	}
	if !models.ValidPosting(p.Posting) {
		writeError(w, http.StatusBadRequest, "posting must be one of FIELD, GARRISON, HQ, RESERVE")
		return nil, false
	}
	return &p, true
}

// CreateServing inserts a serving member. The store rejects duplicates,
// non-positive salaries and out-of-range ages.
func (h *PersonnelHandler) CreateServing(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeServing(w, r)
	if !ok {
		return
	}
	if p.ServiceID == "" {
		writeError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	if err := h.PersonnelService.CreateServing(r.Context(), *p); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"service_id": p.ServiceID})
}

// UpdateServing rewrites a serving member's attributes. The path ID wins
// over any ID in the body.
func (h *PersonnelHandler) UpdateServing(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeServing(w, r)
	if !ok {
		return
	}
	p.ServiceID = chi.URLParam(r, "id")

	if err := h.PersonnelService.UpdateServing(r.Context(), *p); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// DeleteServing removes a serving member; equipment assigned to them keeps
// its row with the assignment cleared.
func (h *PersonnelHandler) DeleteServing(w http.ResponseWriter, r *http.Request) {
	if err := h.PersonnelService.DeleteServing(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// ListRetired returns all retired personnel.
func (h *PersonnelHandler) ListRetired(w http.ResponseWriter, r *http.Request) {
	personnel, err := h.PersonnelService.ListRetired(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": personnel})
}

// GetRetired returns one retired member by service ID.
func (h *PersonnelHandler) GetRetired(w http.ResponseWriter, r *http.Request) {
	p, err := h.PersonnelService.GetRetired(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": p})
}

func (h *PersonnelHandler) decodeRetired(w http.ResponseWriter, r *http.Request) (*models.RetiredPersonnel, bool) {
	var p models.RetiredPersonnel
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return nil, false
	}
	if p.Name == "" || p.Rank == "" || !validDate(p.DateOfBirth) || !validDate(p.RetirementDate) {
		writeError(w, http.StatusBadRequest, "name, rank, date_of_birth and retirement_date (YYYY-MM-DD) are required")
		return nil, false
	}
	return &p, true
}

// CreateRetired inserts a retired member. No age rule applies.
func (h *PersonnelHandler) CreateRetired(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeRetired(w, r)
	if !ok {
		return
	}
	if p.ServiceID == "" {
		writeError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	if err := h.PersonnelService.CreateRetired(r.Context(), *p); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"service_id": p.ServiceID})
}

// UpdateRetired rewrites a retired member's attributes.
func (h *PersonnelHandler) UpdateRetired(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeRetired(w, r)
	if !ok {
		return
	}
	p.ServiceID = chi.URLParam(r, "id")

	if err := h.PersonnelService.UpdateRetired(r.Context(), *p); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// DeleteRetired removes a retired member.
func (h *PersonnelHandler) DeleteRetired(w http.ResponseWriter, r *http.Request) {
	if err := h.PersonnelService.DeleteRetired(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}
