package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

// fakeCredentialsRepo implements CredentialsRepository in memory.
type fakeCredentialsRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeCredentialsRepo() *fakeCredentialsRepo {
	return &fakeCredentialsRepo{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeCredentialsRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeCredentialsRepo) Create(_ context.Context, username string, hash []byte, role models.Role) (*models.User, error) {
	if _, ok := f.users[username]; ok {
		return nil, store.ErrDuplicate
	}
	u := &models.User{ID: f.nextID, Username: username, PasswordHash: hash, Role: role}
	f.nextID++
	f.users[username] = u
	return u, nil
}

func (f *fakeCredentialsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// fakeIssuer returns a fixed token and records the identity it signed.
type fakeIssuer struct {
	issued models.Identity
}

func (f *fakeIssuer) Issue(id models.Identity) (string, error) {
	f.issued = id
	return "signed-token", nil
}

func TestRegister_ThenLogin(t *testing.T) {
	repo := newFakeCredentialsRepo()
	issuer := &fakeIssuer{}
	svc := NewAuthService(repo, issuer)

	user, err := svc.Register(context.Background(), "carol", "hunter2x")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotContains(t, string(user.PasswordHash), "hunter2x", "plaintext must never be stored")

	tok, logged, err := svc.Login(context.Background(), "carol", "hunter2x")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", tok)
	assert.Equal(t, models.RoleUser, logged.Role)
	assert.Equal(t, models.RoleUser, issuer.issued.Role)
	assert.Equal(t, "carol", issuer.issued.Username)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(newFakeCredentialsRepo(), &fakeIssuer{})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "longenough"},
		{"short password", "carol", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := NewAuthService(newFakeCredentialsRepo(), &fakeIssuer{})

	_, err := svc.Register(context.Background(), "carol", "hunter2x")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "carol", "different1")
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newFakeCredentialsRepo()
	svc := NewAuthService(repo, &fakeIssuer{})

	_, err := svc.Register(context.Background(), "carol", "hunter2x")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "carol", "wrongpass")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "hunter2x")
	assert.ErrorIs(t, err, ErrBadCredentials, "unknown user must look like a wrong password")
}

func TestVerifyHash_Properties(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-one"), bcrypt.DefaultCost)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("secret-one")))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("secret-two")))
}

func TestSetup_OneTime(t *testing.T) {
	repo := newFakeCredentialsRepo()
	svc := NewAuthService(repo, &fakeIssuer{})

	err := svc.Setup(context.Background(), "", "")
	require.NoError(t, err)

	admin, err := repo.GetByUsername(context.Background(), SetupAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	observer, err := repo.GetByUsername(context.Background(), SetupObserverUsername)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, observer.Role)

	err = svc.Setup(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrSetupDone)
}

func TestSetup_CustomPasswords(t *testing.T) {
	repo := newFakeCredentialsRepo()
	svc := NewAuthService(repo, &fakeIssuer{})

	require.NoError(t, svc.Setup(context.Background(), "topsecret", "viewonly1"))

	admin, err := repo.GetByUsername(context.Background(), SetupAdminUsername)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte("topsecret")))
}
