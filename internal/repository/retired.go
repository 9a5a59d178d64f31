package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// PostgresRetiredRepository implements retired-personnel operations against
// a PostgreSQL database.
type PostgresRetiredRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRetiredRepository creates a new PostgresRetiredRepository using
// the provided *sql.DB.
func NewPostgresRetiredRepository(db *sql.DB) *PostgresRetiredRepository {
	return &PostgresRetiredRepository{DB: db}
}

const retiredColumns = `service_id, name, to_char(date_of_birth, 'YYYY-MM-DD'), rank, regiment,
		to_char(retirement_date, 'YYYY-MM-DD'), pension, awards, skills`

func scanRetired(scan func(dest ...any) error) (*models.RetiredPersonnel, error) {
	var p models.RetiredPersonnel
	err := scan(&p.ServiceID, &p.Name, &p.DateOfBirth, &p.Rank, &p.Regiment,
		&p.RetirementDate, &p.Pension, &p.Awards, &p.Skills)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all retired personnel ordered by service ID.
func (r *PostgresRetiredRepository) List(ctx context.Context) ([]models.RetiredPersonnel, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+retiredColumns+` FROM retired_personnel ORDER BY service_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list retired personnel: %w", err)
	}
	defer rows.Close()

	var personnel []models.RetiredPersonnel
	for rows.Next() {
		p, err := scanRetired(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		personnel = append(personnel, *p)
	}
	return personnel, rows.Err()
}

// Get fetches a single retired member by service ID.
func (r *PostgresRetiredRepository) Get(ctx context.Context, serviceID string) (*models.RetiredPersonnel, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+retiredColumns+` FROM retired_personnel WHERE service_id = $1
	`, serviceID)
	p, err := scanRetired(row.Scan)
	if err != nil {
		return nil, store.MapError(err)
	}
	return p, nil
}

// Create inserts a retired member. No age rule applies here.
func (r *PostgresRetiredRepository) Create(ctx context.Context, p models.RetiredPersonnel) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO retired_personnel
			(service_id, name, date_of_birth, rank, regiment, retirement_date, pension, awards, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ServiceID, p.Name, p.DateOfBirth, p.Rank, p.Regiment,
		p.RetirementDate, p.Pension, p.Awards, p.Skills)
	return store.MapError(err)
}

// Update rewrites the mutable attributes of a retired member.
func (r *PostgresRetiredRepository) Update(ctx context.Context, p models.RetiredPersonnel) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE retired_personnel
		SET name = $2, rank = $3, regiment = $4, retirement_date = $5,
			pension = $6, awards = $7, skills = $8
		WHERE service_id = $1
	`, p.ServiceID, p.Name, p.Rank, p.Regiment, p.RetirementDate,
		p.Pension, p.Awards, p.Skills)
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

// Delete removes a retired member.
func (r *PostgresRetiredRepository) Delete(ctx context.Context, serviceID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM retired_personnel WHERE service_id = $1
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
