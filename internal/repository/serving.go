package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// PostgresServingRepository implements serving-personnel operations against
// a PostgreSQL database.
type PostgresServingRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresServingRepository creates a new PostgresServingRepository using
// the provided *sql.DB.
func NewPostgresServingRepository(db *sql.DB) *PostgresServingRepository {
	return &PostgresServingRepository{DB: db}
}

const servingColumns = `service_id, name, to_char(date_of_birth, 'YYYY-MM-DD'), rank, regiment,
		salary, awards, skills, posting, blood_group, medical_status`

func scanServing(scan func(dest ...any) error) (*models.ServingPersonnel, error) {
	var p models.ServingPersonnel
	err := scan(&p.ServiceID, &p.Name, &p.DateOfBirth, &p.Rank, &p.Regiment,
		&p.Salary, &p.Awards, &p.Skills, &p.Posting, &p.BloodGroup, &p.MedicalStatus)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all serving personnel ordered by service ID.
func (r *PostgresServingRepository) List(ctx context.Context) ([]models.ServingPersonnel, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+servingColumns+` FROM serving_personnel ORDER BY service_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list serving personnel: %w", err)
	}
	defer rows.Close()

	var personnel []models.ServingPersonnel
	for rows.Next() {
		p, err := scanServing(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		personnel = append(personnel, *p)
	}
	return personnel, rows.Err()
}

// Get fetches a single serving member by service ID.
func (r *PostgresServingRepository) Get(ctx context.Context, serviceID string) (*models.ServingPersonnel, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+servingColumns+` FROM serving_personnel WHERE service_id = $1
	`, serviceID)
	p, err := scanServing(row.Scan)
	if err != nil {
		return nil, store.MapError(err)
	}
	return p, nil
}

// Create inserts a serving member. The store rejects duplicate service IDs,
// non-positive salaries, unknown postings and out-of-range ages; those
// outcomes surface as the typed store errors.
func (r *PostgresServingRepository) Create(ctx context.Context, p models.ServingPersonnel) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO serving_personnel
			(service_id, name, date_of_birth, rank, regiment, salary, awards, skills, posting, blood_group, medical_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ServiceID, p.Name, p.DateOfBirth, p.Rank, p.Regiment, p.Salary,
		p.Awards, p.Skills, p.Posting, p.BloodGroup, p.MedicalStatus)
	return store.MapError(err)
}

// Update rewrites the mutable attributes of a serving member.
func (r *PostgresServingRepository) Update(ctx context.Context, p models.ServingPersonnel) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE serving_personnel
		SET name = $2, rank = $3, regiment = $4, salary = $5, awards = $6,
			skills = $7, posting = $8, blood_group = $9, medical_status = $10
		WHERE service_id = $1
	`, p.ServiceID, p.Name, p.Rank, p.Regiment, p.Salary, p.Awards,
		p.Skills, p.Posting, p.BloodGroup, p.MedicalStatus)
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

// Delete removes a serving member. Equipment assigned to them has its
// assignment cleared by the store, not blocked.
func (r *PostgresServingRepository) Delete(ctx context.Context, serviceID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM serving_personnel WHERE service_id = $1
	`, serviceID)
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
