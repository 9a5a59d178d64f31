package service

import (
	"context"

	"github.com/milrecord/milrecord/internal/models"
)

// LogisticsRepository defines the persistence operations required by the
// equipment service.
type LogisticsRepository interface {
	List(ctx context.Context) ([]models.Logistics, error)
	Get(ctx context.Context, equipmentID string) (*models.Logistics, error)
	Create(ctx context.Context, l models.Logistics) error
	Update(ctx context.Context, l models.Logistics) error
	Delete(ctx context.Context, equipmentID string) error
}

// SpecializationsRepository defines the persistence operations over the
// weak-entity tables required by the equipment service.
type SpecializationsRepository interface {
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

// LogisticsService implements equipment and specialization operations by
// delegating to the repositories. Existence dependency and cascades are the
// store's responsibility.
type LogisticsService struct {
	logistics LogisticsRepository
	specs     SpecializationsRepository
}

// NewLogisticsService constructs a LogisticsService from the two
// repositories.
func NewLogisticsService(logistics LogisticsRepository, specs SpecializationsRepository) *LogisticsService {
	return &LogisticsService{logistics: logistics, specs: specs}
}

// ListEquipment returns all equipment records.
func (s *LogisticsService) ListEquipment(ctx context.Context) ([]models.Logistics, error) {
	return s.logistics.List(ctx)
}

// GetEquipment fetches one equipment record by equipment ID.
func (s *LogisticsService) GetEquipment(ctx context.Context, equipmentID string) (*models.Logistics, error) {
	return s.logistics.Get(ctx, equipmentID)
}

// CreateEquipment inserts an equipment record.
func (s *LogisticsService) CreateEquipment(ctx context.Context, l models.Logistics) error {
	return s.logistics.Create(ctx, l)
}

// UpdateEquipment rewrites an equipment record's attributes.
func (s *LogisticsService) UpdateEquipment(ctx context.Context, l models.Logistics) error {
	return s.logistics.Update(ctx, l)
}

// DeleteEquipment removes an equipment record along with any specialization
// row sharing its key.
func (s *LogisticsService) DeleteEquipment(ctx context.Context, equipmentID string) error {
	return s.logistics.Delete(ctx, equipmentID)
}

// ListArtillery returns all artillery rows.
func (s *LogisticsService) ListArtillery(ctx context.Context) ([]models.Artillery, error) {
	return s.specs.ListArtillery(ctx)
}

// GetArtillery fetches one artillery row by equipment ID.
func (s *LogisticsService) GetArtillery(ctx context.Context, equipmentID string) (*models.Artillery, error) {
	return s.specs.GetArtillery(ctx, equipmentID)
}

// CreateArtillery inserts an artillery row; its logistics parent must exist.
func (s *LogisticsService) CreateArtillery(ctx context.Context, a models.Artillery) error {
	return s.specs.CreateArtillery(ctx, a)
}

// UpdateArtillery rewrites an artillery row's attributes.
func (s *LogisticsService) UpdateArtillery(ctx context.Context, a models.Artillery) error {
	return s.specs.UpdateArtillery(ctx, a)
}

// DeleteArtillery removes an artillery row.
func (s *LogisticsService) DeleteArtillery(ctx context.Context, equipmentID string) error {
	return s.specs.DeleteArtillery(ctx, equipmentID)
}

// ListShips returns all ship rows.
func (s *LogisticsService) ListShips(ctx context.Context) ([]models.Ship, error) {
	return s.specs.ListShips(ctx)
}

// GetShip fetches one ship row by equipment ID.
func (s *LogisticsService) GetShip(ctx context.Context, equipmentID string) (*models.Ship, error) {
	return s.specs.GetShip(ctx, equipmentID)
}

// CreateShip inserts a ship row; its logistics parent must exist.
func (s *LogisticsService) CreateShip(ctx context.Context, sh models.Ship) error {
	return s.specs.CreateShip(ctx, sh)
}

// UpdateShip rewrites a ship row's attributes.
func (s *LogisticsService) UpdateShip(ctx context.Context, sh models.Ship) error {
	return s.specs.UpdateShip(ctx, sh)
}

// DeleteShip removes a ship row.
func (s *LogisticsService) DeleteShip(ctx context.Context, equipmentID string) error {
	return s.specs.DeleteShip(ctx, equipmentID)
}

// ListJets returns all jet rows.
func (s *LogisticsService) ListJets(ctx context.Context) ([]models.Jet, error) {
	return s.specs.ListJets(ctx)
}

// GetJet fetches one jet row by equipment ID.
func (s *LogisticsService) GetJet(ctx context.Context, equipmentID string) (*models.Jet, error) {
	return s.specs.GetJet(ctx, equipmentID)
}

// CreateJet inserts a jet row; its logistics parent must exist.
func (s *LogisticsService) CreateJet(ctx context.Context, j models.Jet) error {
	return s.specs.CreateJet(ctx, j)
}

// UpdateJet rewrites a jet row's attributes.
func (s *LogisticsService) UpdateJet(ctx context.Context, j models.Jet) error {
	return s.specs.UpdateJet(ctx, j)
}

// DeleteJet removes a jet row.
func (s *LogisticsService) DeleteJet(ctx context.Context, equipmentID string) error {
	return s.specs.DeleteJet(ctx, equipmentID)
}
