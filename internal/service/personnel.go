package service

import (
	"context"

	"github.com/milrecord/milrecord/internal/models"
)

// ServingRepository defines the persistence operations required by the
// serving-personnel service.
type ServingRepository interface {
	List(ctx context.Context) ([]models.ServingPersonnel, error)
	Get(ctx context.Context, serviceID string) (*models.ServingPersonnel, error)
	Create(ctx context.Context, p models.ServingPersonnel) error
	Update(ctx context.Context, p models.ServingPersonnel) error
	Delete(ctx context.Context, serviceID string) error
}

// RetiredRepository defines the persistence operations required by the
// retired-personnel service.
type RetiredRepository interface {
	List(ctx context.Context) ([]models.RetiredPersonnel, error)
	Get(ctx context.Context, serviceID string) (*models.RetiredPersonnel, error)
	Create(ctx context.Context, p models.RetiredPersonnel) error
	Update(ctx context.Context, p models.RetiredPersonnel) error
	Delete(ctx context.Context, serviceID string) error
}

// PersonnelService implements operations over serving and retired personnel
// by delegating to their repositories. Constraint enforcement (uniqueness,
// positivity, the age rule) lives in the store.
type PersonnelService struct {
	serving ServingRepository
	retired RetiredRepository
}

// NewPersonnelService constructs a PersonnelService from the two
// repositories.
func NewPersonnelService(serving ServingRepository, retired RetiredRepository) *PersonnelService {
	return &PersonnelService{serving: serving, retired: retired}
}

// ListServing returns all serving personnel.
func (s *PersonnelService) ListServing(ctx context.Context) ([]models.ServingPersonnel, error) {
	return s.serving.List(ctx)
}

// GetServing fetches one serving member by service ID.
func (s *PersonnelService) GetServing(ctx context.Context, serviceID string) (*models.ServingPersonnel, error) {
	return s.serving.Get(ctx, serviceID)
}

// CreateServing inserts a serving member.
func (s *PersonnelService) CreateServing(ctx context.Context, p models.ServingPersonnel) error {
	return s.serving.Create(ctx, p)
}

// UpdateServing rewrites a serving member's attributes.
func (s *PersonnelService) UpdateServing(ctx context.Context, p models.ServingPersonnel) error {
	return s.serving.Update(ctx, p)
}

// DeleteServing removes a serving member.
func (s *PersonnelService) DeleteServing(ctx context.Context, serviceID string) error {
	return s.serving.Delete(ctx, serviceID)
}

// ListRetired returns all retired personnel.
func (s *PersonnelService) ListRetired(ctx context.Context) ([]models.RetiredPersonnel, error) {
	return s.retired.List(ctx)
}

// GetRetired fetches one retired member by service ID.
func (s *PersonnelService) GetRetired(ctx context.Context, serviceID string) (*models.RetiredPersonnel, error) {
	return s.retired.Get(ctx, serviceID)
}

// CreateRetired inserts a retired member.
func (s *PersonnelService) CreateRetired(ctx context.Context, p models.RetiredPersonnel) error {
	return s.retired.Create(ctx, p)
}

// UpdateRetired rewrites a retired member's attributes.
func (s *PersonnelService) UpdateRetired(ctx context.Context, p models.RetiredPersonnel) error {
	return s.retired.Update(ctx, p)
}

// DeleteRetired removes a retired member.
func (s *PersonnelService) DeleteRetired(ctx context.Context, serviceID string) error {
	return s.retired.Delete(ctx, serviceID)
}
