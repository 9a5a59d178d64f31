package service

import (
	"context"

	"github.com/milrecord/milrecord/internal/models"
)

// StatsRepository defines the aggregate queries required by the stats
// service.
type StatsRepository interface {
	Stats(ctx context.Context) (*models.Stats, error)
	Assignments(ctx context.Context) ([]models.Assignment, error)
}

// StatsService serves aggregate statistics and reports.
type StatsService struct {
	repo StatsRepository
}

// NewStatsService constructs a StatsService using the provided repository.
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Stats returns record counts and monetary totals.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.repo.Stats(ctx)
}

// Assignments returns the personnel-to-equipment assignment report.
func (s *StatsService) Assignments(ctx context.Context) ([]models.Assignment, error) {
	return s.repo.Assignments(ctx)
}
