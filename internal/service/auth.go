// Package service provides the business logic between HTTP handlers and the
// repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// Credential length minimums, checked before any hashing.
const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

// Default bootstrap accounts created by Setup.
const (
	SetupAdminUsername    = "admin"
	SetupObserverUsername = "observer"

	defaultAdminPassword    = "admin123"
	defaultObserverPassword = "observer123"
)

var (
	// ErrValidation indicates input rejected before reaching the store.
	ErrValidation = errors.New("invalid input")
	// ErrBadCredentials indicates an unknown username or a wrong password.
	// The two cases are indistinguishable to the caller.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrSetupDone indicates the one-time bootstrap has already run.
	ErrSetupDone = errors.New("setup has already been completed")
)

// CredentialsRepository defines the persistence operations required by the
// authentication service.
type CredentialsRepository interface {
	// GetByUsername fetches a user by login name.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Create inserts a new user with a hashed password.
	Create(ctx context.Context, username string, hash []byte, role models.Role) (*models.User, error)
	// Count returns the total number of user rows.
	Count(ctx context.Context) (int64, error)
}

// TokenIssuer signs session tokens for authenticated identities.
type TokenIssuer interface {
	Issue(id models.Identity) (string, error)
}

// AuthService implements registration, login and the one-time bootstrap.
type AuthService struct {
	repo   CredentialsRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService from a credentials repository and
// a token issuer.
func NewAuthService(repo CredentialsRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates an account with the default read-only role. Length rules
// are enforced before the password is hashed; the plaintext is never stored.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if len(username) < MinUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrValidation, MinUsernameLen)
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, username, hash, models.RoleUser)
}

// Login verifies credentials and returns a signed token plus the account.
// Unknown usernames and wrong passwords both return ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := s.tokens.Issue(models.Identity{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Setup seeds the two default accounts. It refuses with ErrSetupDone once
// any user row exists, making the bootstrap one-time. Empty passwords fall
// back to the documented defaults.
func (s *AuthService) Setup(ctx context.Context, adminPassword, observerPassword string) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrSetupDone
	}

	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}
	if observerPassword == "" {
		observerPassword = defaultObserverPassword
	}
	if len(adminPassword) < MinPasswordLen || len(observerPassword) < MinPasswordLen {
		return fmt.Errorf("%w: passwords must be at least %d characters", ErrValidation, MinPasswordLen)
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.repo.Create(ctx, SetupAdminUsername, adminHash, models.RoleAdmin); err != nil {
		return err
	}

	observerHash, err := bcrypt.GenerateFromPassword([]byte(observerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.repo.Create(ctx, SetupObserverUsername, observerHash, models.RoleUser); err != nil {
		return err
	}
	return nil
}
