package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// PostgresLogisticsRepository implements equipment-record operations against
// a PostgreSQL database.
type PostgresLogisticsRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresLogisticsRepository creates a new PostgresLogisticsRepository
// using the provided *sql.DB.
func NewPostgresLogisticsRepository(db *sql.DB) *PostgresLogisticsRepository {
	return &PostgresLogisticsRepository{DB: db}
}

const logisticsColumns = `equipment_id, category, cost, to_char(procured, 'YYYY-MM-DD'),
		technology, location, assigned_to`

func scanLogistics(scan func(dest ...any) error) (*models.Logistics, error) {
	var l models.Logistics
	err := scan(&l.EquipmentID, &l.Category, &l.Cost, &l.Procured,
		&l.Technology, &l.Location, &l.AssignedTo)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all equipment records ordered by equipment ID.
func (r *PostgresLogisticsRepository) List(ctx context.Context) ([]models.Logistics, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+logisticsColumns+` FROM logistics ORDER BY equipment_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list logistics: %w", err)
	}
	defer rows.Close()

	var records []models.Logistics
	for rows.Next() {
		l, err := scanLogistics(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, *l)
	}
	return records, rows.Err()
}

// Get fetches a single equipment record by equipment ID.
func (r *PostgresLogisticsRepository) Get(ctx context.Context, equipmentID string) (*models.Logistics, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+logisticsColumns+` FROM logistics WHERE equipment_id = $1
	`, equipmentID)
	l, err := scanLogistics(row.Scan)
	if err != nil {
		return nil, store.MapError(err)
	}
	return l, nil
}

// Create inserts an equipment record. An assignment naming a missing
// personnel row surfaces as store.ErrForeignKey.
func (r *PostgresLogisticsRepository) Create(ctx context.Context, l models.Logistics) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO logistics (equipment_id, category, cost, procured, technology, location, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, l.EquipmentID, l.Category, l.Cost, l.Procured, l.Technology, l.Location, l.AssignedTo)
	return store.MapError(err)
}

// Update rewrites the mutable attributes of an equipment record.
func (r *PostgresLogisticsRepository) Update(ctx context.Context, l models.Logistics) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE logistics
		SET category = $2, cost = $3, technology = $4, location = $5, assigned_to = $6
		WHERE equipment_id = $1
	`, l.EquipmentID, l.Category, l.Cost, l.Technology, l.Location, l.AssignedTo)
	if err != nil {
		return store.MapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes an equipment record. Specialization rows sharing the key
// are removed by the store's cascade.
func (r *PostgresLogisticsRepository) Delete(ctx context.Context, equipmentID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM logistics WHERE equipment_id = $1
	`, equipmentID)
	if err != nil {
		return store.MapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
