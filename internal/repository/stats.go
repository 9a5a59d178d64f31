package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
)

// PostgresStatsRepository implements aggregate queries across the schema.
type PostgresStatsRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository using the
// provided *sql.DB.
func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{DB: db}
}

// Stats returns row counts, monetary totals and equipment cost grouped by
// category. Every read re-fetches; nothing is cached across requests.
func (r *PostgresStatsRepository) Stats(ctx context.Context) (*models.Stats, error) {
	s := models.Stats{CostByCategory: make(map[string]float64)}

	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM serving_personnel),
			(SELECT COUNT(*) FROM retired_personnel),
			(SELECT COUNT(*) FROM logistics),
			(SELECT COALESCE(SUM(salary), 0) FROM serving_personnel),
			(SELECT COALESCE(SUM(pension), 0) FROM retired_personnel)
	`).Scan(&s.Users, &s.ServingPersonnel, &s.RetiredPersonnel,
		&s.Equipment, &s.TotalSalary, &s.TotalPension)
	if err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT category, SUM(cost) FROM logistics GROUP BY category ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("stats cost by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var cost float64
		if err := rows.Scan(&category, &cost); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		s.CostByCategory[category] = cost
	}
	return &s, rows.Err()
}

// Assignments returns every serving member with their assigned equipment,
// if any. The join is left-outer: unassigned members still appear.
func (r *PostgresStatsRepository) Assignments(ctx context.Context) ([]models.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.service_id, p.name, p.rank, l.equipment_id, l.category, l.location
		FROM serving_personnel p
		LEFT JOIN logistics l ON l.assigned_to = p.service_id
		ORDER BY p.service_id
	`)
	if err != nil {
		return nil, fmt.Errorf("assignments report: %w", err)
	}
	defer rows.Close()

	var report []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ServiceID, &a.Name, &a.Rank, &a.EquipmentID, &a.Category, &a.Location); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		report = append(report, a)
	}
	return report, rows.Err()
}
