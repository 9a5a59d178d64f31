package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// PostgresSpecializationsRepository implements operations on the weak-entity
// specialization tables (artillery, ships, jets). Each row shares its key
// with a logistics row; inserts without the parent fail with
// store.ErrForeignKey, and parent deletion cascades.
type PostgresSpecializationsRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSpecializationsRepository creates a new
// PostgresSpecializationsRepository using the provided *sql.DB.
func NewPostgresSpecializationsRepository(db *sql.DB) *PostgresSpecializationsRepository {
	return &PostgresSpecializationsRepository{DB: db}
}

func (r *PostgresSpecializationsRepository) deleteByKey(ctx context.Context, table, equipmentID string) error {
	// table is one of the three fixed names below, never caller input.
	res, err := r.DB.ExecContext(ctx, `DELETE FROM `+table+` WHERE equipment_id = $1`, equipmentID)
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

// ListArtillery returns all artillery rows ordered by equipment ID.
func (r *PostgresSpecializationsRepository) ListArtillery(ctx context.Context) ([]models.Artillery, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT equipment_id, range_km, to_char(commissioned, 'YYYY-MM-DD') FROM artillery ORDER BY equipment_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list artillery: %w", err)
	}
	defer rows.Close()

	var records []models.Artillery
	for rows.Next() {
		var a models.Artillery
		if err := rows.Scan(&a.EquipmentID, &a.RangeKm, &a.Commissioned); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetArtillery fetches a single artillery row by equipment ID.
func (r *PostgresSpecializationsRepository) GetArtillery(ctx context.Context, equipmentID string) (*models.Artillery, error) {
	var a models.Artillery
	err := r.DB.QueryRowContext(ctx, `
		SELECT equipment_id, range_km, to_char(commissioned, 'YYYY-MM-DD') FROM artillery WHERE equipment_id = $1
	`, equipmentID).Scan(&a.EquipmentID, &a.RangeKm, &a.Commissioned)
	if err != nil {
		return nil, store.MapError(err)
	}
	return &a, nil
}

// CreateArtillery inserts an artillery row for an existing logistics record.
func (r *PostgresSpecializationsRepository) CreateArtillery(ctx context.Context, a models.Artillery) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO artillery (equipment_id, range_km, commissioned) VALUES ($1, $2, $3)
	`, a.EquipmentID, a.RangeKm, a.Commissioned)
	return store.MapError(err)
}

// UpdateArtillery rewrites the attributes of an artillery row.
func (r *PostgresSpecializationsRepository) UpdateArtillery(ctx context.Context, a models.Artillery) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE artillery SET range_km = $2, commissioned = $3 WHERE equipment_id = $1
	`, a.EquipmentID, a.RangeKm, a.Commissioned)
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

// DeleteArtillery removes an artillery row. The logistics parent survives.
func (r *PostgresSpecializationsRepository) DeleteArtillery(ctx context.Context, equipmentID string) error {
	return r.deleteByKey(ctx, "artillery", equipmentID)
}

// ListShips returns all ship rows ordered by equipment ID.
func (r *PostgresSpecializationsRepository) ListShips(ctx context.Context) ([]models.Ship, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT equipment_id, staff_size, to_char(commissioned, 'YYYY-MM-DD') FROM ships ORDER BY equipment_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	defer rows.Close()

	var records []models.Ship
	for rows.Next() {
		var s models.Ship
		if err := rows.Scan(&s.EquipmentID, &s.StaffSize, &s.Commissioned); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

// GetShip fetches a single ship row by equipment ID.
func (r *PostgresSpecializationsRepository) GetShip(ctx context.Context, equipmentID string) (*models.Ship, error) {
	var s models.Ship
	err := r.DB.QueryRowContext(ctx, `
		SELECT equipment_id, staff_size, to_char(commissioned, 'YYYY-MM-DD') FROM ships WHERE equipment_id = $1
	`, equipmentID).Scan(&s.EquipmentID, &s.StaffSize, &s.Commissioned)
	if err != nil {
		return nil, store.MapError(err)
	}
	return &s, nil
}

// CreateShip inserts a ship row for an existing logistics record.
func (r *PostgresSpecializationsRepository) CreateShip(ctx context.Context, s models.Ship) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO ships (equipment_id, staff_size, commissioned) VALUES ($1, $2, $3)
	`, s.EquipmentID, s.StaffSize, s.Commissioned)
	return store.MapError(err)
}

// UpdateShip rewrites the attributes of a ship row.
func (r *PostgresSpecializationsRepository) UpdateShip(ctx context.Context, s models.Ship) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE ships SET staff_size = $2, commissioned = $3 WHERE equipment_id = $1
	`, s.EquipmentID, s.StaffSize, s.Commissioned)
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

// DeleteShip removes a ship row. The logistics parent survives.
func (r *PostgresSpecializationsRepository) DeleteShip(ctx context.Context, equipmentID string) error {
	return r.deleteByKey(ctx, "ships", equipmentID)
}

// ListJets returns all jet rows ordered by equipment ID.
func (r *PostgresSpecializationsRepository) ListJets(ctx context.Context) ([]models.Jet, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT equipment_id, speed_kmh, to_char(commissioned, 'YYYY-MM-DD') FROM jets ORDER BY equipment_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list jets: %w", err)
	}
	defer rows.Close()

	var records []models.Jet
	for rows.Next() {
		var j models.Jet
		if err := rows.Scan(&j.EquipmentID, &j.SpeedKmh, &j.Commissioned); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, j)
	}
	return records, rows.Err()
}

// GetJet fetches a single jet row by equipment ID.
func (r *PostgresSpecializationsRepository) GetJet(ctx context.Context, equipmentID string) (*models.Jet, error) {
	var j models.Jet
	err := r.DB.QueryRowContext(ctx, `
		SELECT equipment_id, speed_kmh, to_char(commissioned, 'YYYY-MM-DD') FROM jets WHERE equipment_id = $1
	`, equipmentID).Scan(&j.EquipmentID, &j.SpeedKmh, &j.Commissioned)
	if err != nil {
		return nil, store.MapError(err)
	}
	return &j, nil
}

// CreateJet inserts a jet row for an existing logistics record.
func (r *PostgresSpecializationsRepository) CreateJet(ctx context.Context, j models.Jet) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO jets (equipment_id, speed_kmh, commissioned) VALUES ($1, $2, $3)
	`, j.EquipmentID, j.SpeedKmh, j.Commissioned)
	return store.MapError(err)
}

// UpdateJet rewrites the attributes of a jet row.
func (r *PostgresSpecializationsRepository) UpdateJet(ctx context.Context, j models.Jet) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE jets SET speed_kmh = $2, commissioned = $3 WHERE equipment_id = $1
	`, j.EquipmentID, j.SpeedKmh, j.Commissioned)
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

// DeleteJet removes a jet row. The logistics parent survives.
func (r *PostgresSpecializationsRepository) DeleteJet(ctx context.Context, equipmentID string) error {
	return r.deleteByKey(ctx, "jets", equipmentID)
}
