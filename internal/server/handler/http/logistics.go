package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/models"
)

// LogisticsService defines the interface for equipment and specialization
// operations required by the HTTP handlers.
type LogisticsService interface {
	ListEquipment(ctx context.Context) ([]models.Logistics, error)
	GetEquipment(ctx context.Context, equipmentID string) (*models.Logistics, error)
	CreateEquipment(ctx context.Context, l models.Logistics) error
	UpdateEquipment(ctx context.Context, l models.Logistics) error
	DeleteEquipment(ctx context.Context, equipmentID string) error

	ListArtillery(ctx context.Context) ([]models.Artillery, error)
	GetArtillery(ctx context.Context, equipmentID string) (*models.Artillery, error)
	CreateArtillery(ctx context.Context, a models.Artillery) error
	UpdateArtillery(ctx context.Context, a models.Artillery) error
	DeleteArtillery(ctx context.Context, equipmentID string) error

	ListShips(ctx context.Context) ([]models.Ship, error)
	GetShip(ctx context.Context, equipmentID string) (*models.Ship, error)
	CreateShip(ctx context.Context, s models.Ship) error
	UpdateShip(ctx context.Context, s models.Ship) error
	DeleteShip(ctx context.Context, equipmentID string) error

	ListJets(ctx context.Context) ([]models.Jet, error)
	GetJet(ctx context.Context, equipmentID string) (*models.Jet, error)
	CreateJet(ctx context.Context, j models.Jet) error
	UpdateJet(ctx context.Context, j models.Jet) error
	DeleteJet(ctx context.Context, equipmentID string) error
}

// LogisticsHandler handles equipment and specialization endpoints.
type LogisticsHandler struct {
	// LogisticsService performs the underlying record operations.
	LogisticsService LogisticsService
	// Logger reports unexpected failures.
	Logger *zap.Logger
}

// ListEquipment returns all equipment records.
func (h *LogisticsHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	records, err := h.LogisticsService.ListEquipment(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": records})
}

// GetEquipment returns one equipment record by equipment ID.
func (h *LogisticsHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	l, err := h.LogisticsService.GetEquipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": l})
}

func (h *LogisticsHandler) decodeEquipment(w http.ResponseWriter, r *http.Request) (*models.Logistics, bool) {
	var l models.Logistics
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return nil, false
	}
	if l.Category == "" || !validDate(l.Procured) {
		writeError(w, http.StatusBadRequest, "category and procured (YYYY-MM-DD) are required")
		return nil, false
	}
	return &l, true
}

// CreateEquipment inserts an equipment record. An assignment naming a
// missing personnel row is a 400.
func (h *LogisticsHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	l, ok := h.decodeEquipment(w, r)
	if !ok {
		return
	}
	if l.EquipmentID == "" {
		writeError(w, http.StatusBadRequest, "equipment_id is required")
		return
	}

	if err := h.LogisticsService.CreateEquipment(r.Context(), *l); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"equipment_id": l.EquipmentID})
}

// UpdateEquipment rewrites an equipment record's attributes.
func (h *LogisticsHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	l, ok := h.decodeEquipment(w, r)
	if !ok {
		return
	}
	l.EquipmentID = chi.URLParam(r, "id")

	if err := h.LogisticsService.UpdateEquipment(r.Context(), *l); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// DeleteEquipment removes an equipment record and, via the store's cascade,
// any specialization row sharing its key.
func (h *LogisticsHandler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	if err := h.LogisticsService.DeleteEquipment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// ListArtillery returns all artillery rows.
func (h *LogisticsHandler) ListArtillery(w http.ResponseWriter, r *http.Request) {
	records, err := h.LogisticsService.ListArtillery(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": records})
}

// GetArtillery returns one artillery row by equipment ID.
func (h *LogisticsHandler) GetArtillery(w http.ResponseWriter, r *http.Request) {
	a, err := h.LogisticsService.GetArtillery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": a})
}

// CreateArtillery inserts an artillery row; 400 if the logistics parent is
// missing.
func (h *LogisticsHandler) CreateArtillery(w http.ResponseWriter, r *http.Request) {
	var a models.Artillery
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil || a.EquipmentID == "" || !validDate(a.Commissioned) {
		writeError(w, http.StatusBadRequest, "equipment_id and commissioned (YYYY-MM-DD) are required")
		return
	}

	if err := h.LogisticsService.CreateArtillery(r.Context(), a); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"equipment_id": a.EquipmentID})
}

// UpdateArtillery rewrites an artillery row's attributes.
func (h *LogisticsHandler) UpdateArtillery(w http.ResponseWriter, r *http.Request) {
	var a models.Artillery
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil || !validDate(a.Commissioned) {
		writeError(w, http.StatusBadRequest, "commissioned (YYYY-MM-DD) is required")
		return
	}
	a.EquipmentID = chi.URLParam(r, "id")

	if err := h.LogisticsService.UpdateArtillery(r.Context(), a); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// DeleteArtillery removes an artillery row; the parent record survives.
func (h *LogisticsHandler) DeleteArtillery(w http.ResponseWriter, r *http.Request) {
	if err := h.LogisticsService.DeleteArtillery(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// ListShips returns all ship rows.
func (h *LogisticsHandler) ListShips(w http.ResponseWriter, r *http.Request) {
	records, err := h.LogisticsService.ListShips(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": records})
}

// GetShip returns one ship row by equipment ID.
func (h *LogisticsHandler) GetShip(w http.ResponseWriter, r *http.Request) {
	s, err := h.LogisticsService.GetShip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": s})
}

// CreateShip inserts a ship row; 400 if the logistics parent is missing.
func (h *LogisticsHandler) CreateShip(w http.ResponseWriter, r *http.Request) {
	var s models.Ship
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil || s.EquipmentID == "" || !validDate(s.Commissioned) {
		writeError(w, http.StatusBadRequest, "equipment_id and commissioned (YYYY-MM-DD) are required")
		return
	}

	if err := h.LogisticsService.CreateShip(r.Context(), s); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"equipment_id": s.EquipmentID})
}

// UpdateShip rewrites a ship row's attributes.
func (h *LogisticsHandler) UpdateShip(w http.ResponseWriter, r *http.Request) {
	var s models.Ship
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil || !validDate(s.Commissioned) {
		writeError(w, http.StatusBadRequest, "commissioned (YYYY-MM-DD) is required")
		return
	}
	s.EquipmentID = chi.URLParam(r, "id")

	if err := h.LogisticsService.UpdateShip(r.Context(), s); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// DeleteShip removes a ship row; the parent record survives.
func (h *LogisticsHandler) DeleteShip(w http.ResponseWriter, r *http.Request) {
	if err := h.LogisticsService.DeleteShip(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// ListJets returns all jet rows.
func (h *LogisticsHandler) ListJets(w http.ResponseWriter, r *http.Request) {
	records, err := h.LogisticsService.ListJets(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": records})
}

// GetJet returns one jet row by equipment ID.
func (h *LogisticsHandler) GetJet(w http.ResponseWriter, r *http.Request) {
	j, err := h.LogisticsService.GetJet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": j})
}

// CreateJet inserts a jet row; 400 if the logistics parent is missing.
func (h *LogisticsHandler) CreateJet(w http.ResponseWriter, r *http.Request) {
	var j models.Jet
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil || j.EquipmentID == "" || !validDate(j.Commissioned) {
		writeError(w, http.StatusBadRequest, "equipment_id and commissioned (YYYY-MM-DD) are required")
		return
	}

	if err := h.LogisticsService.CreateJet(r.Context(), j); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"equipment_id": j.EquipmentID})
}

// UpdateJet rewrites a jet row's attributes.
func (h *LogisticsHandler) UpdateJet(w http.ResponseWriter, r *http.Request) {
	var j models.Jet
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil || !validDate(j.Commissioned) {
		writeError(w, http.StatusBadRequest, "commissioned (YYYY-MM-DD) is required")
		return
	}
	j.EquipmentID = chi.URLParam(r, "id")

	if err := h.LogisticsService.UpdateJet(r.Context(), j); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

// DeleteJet removes a jet row; the parent record survives.
func (h *LogisticsHandler) DeleteJet(w http.ResponseWriter, r *http.Request) {
	if err := h.LogisticsService.DeleteJet(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}
