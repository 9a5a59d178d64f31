// Package repository provides persistence implementations over a
// PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// PostgresUsersRepository implements credential-store operations against a
// PostgreSQL database.
type PostgresUsersRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresUsersRepository creates a new PostgresUsersRepository with the
// given database connection.
func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{DB: db}
}

// GetByUsername fetches a user by login name. Returns store.ErrNotFound if
// no such user exists.
func (r *PostgresUsersRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, store.MapError(err)
	}
	return &u, nil
}

// Create inserts a new user and returns the stored row. Returns
// store.ErrDuplicate if the username is taken.
func (r *PostgresUsersRepository) Create(ctx context.Context, username string, hash []byte, role models.Role) (*models.User, error) {
	u := models.User{Username: username, PasswordHash: hash, Role: role}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, username, string(hash), role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, store.MapError(err)
	}
	return &u, nil
}

// List returns all users ordered by id. Password hashes are included in the
// model but never serialized.
func (r *PostgresUsersRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, role, created_at FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the total number of user rows.
func (r *PostgresUsersRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountByRole returns the number of users holding the given role.
func (r *PostgresUsersRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// adminCountExcluding counts admin rows other than the given id, locking
// them for the duration of the transaction so two concurrent demotions
// cannot both pass the check.
const adminCountExcluding = `
	SELECT COUNT(*) FROM (
		SELECT 1 FROM users WHERE role = 'admin' AND id <> $1 FOR UPDATE
	) AS other_admins`

// UpdateRole changes a user's role. The admin count (excluding the target
// row) and the mutation run in a single transaction; a change that would
// leave zero admins returns store.ErrLastAdmin.
func (r *PostgresUsersRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if role != models.RoleAdmin {
		var others int64
		if err := tx.QueryRowContext(ctx, adminCountExcluding, id).Scan(&others); err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if others == 0 {
			return store.ErrLastAdmin
		}
	}

	res, err := tx.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return store.MapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return store.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes a user. Like UpdateRole, the last-admin check and the
// delete share one transaction.
func (r *PostgresUsersRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var others int64
	if err := tx.QueryRowContext(ctx, adminCountExcluding, id).Scan(&others); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}

	var role models.Role
	err = tx.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if err != nil {
		return store.MapError(err)
	}
	if role == models.RoleAdmin && others == 0 {
		return store.ErrLastAdmin
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return store.MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
