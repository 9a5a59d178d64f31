package service

import (
	"context"
	"fmt"

	"github.com/milrecord/milrecord/internal/models"
)

// UsersRepository defines the persistence operations required by the user
// administration service.
type UsersRepository interface {
	// List returns all users.
	List(ctx context.Context) ([]models.User, error)
	// UpdateRole changes a user's role, refusing to remove the last admin.
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	// Delete removes a user, refusing to remove the last admin.
	Delete(ctx context.Context, id int64) error
}

// UsersService implements admin-only user management.
type UsersService struct {
	repo UsersRepository
}

// NewUsersService constructs a UsersService using the provided repository.
func NewUsersService(repo UsersRepository) *UsersService {
	return &UsersService{repo: repo}
}

// List returns all user accounts.
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// UpdateRole changes a user's role. Unknown role values are rejected before
// reaching the store; the last-admin guard lives in the repository, inside
// the same transaction as the mutation.
func (s *UsersService) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleAdmin, models.RoleUser)
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// Delete removes a user account.
func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
