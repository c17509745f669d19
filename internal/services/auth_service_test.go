package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), repository.NewRoleRepository(db))
}

func developerRoleID(t *testing.T, s *AuthService) uint64 {
	t.Helper()
	role, err := s.roleRepo.FindByName(models.RoleDeveloper)
	require.NoError(t, err)
	return role.ID
}

func TestRegister(t *testing.T) {
	service := newAuthService(t)
	roleID := developerRoleID(t, service)

	user, err := service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		RoleID:   roleID,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleDeveloper, user.Role.Name)
	assert.True(t, user.IsActive)

	// Passwords are stored hashed, never verbatim.
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	service := newAuthService(t)
	roleID := developerRoleID(t, service)

	_, err := service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		RoleID:   roleID,
	})
	require.NoError(t, err)

	_, err = service.Register(RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "supersecret",
		RoleID:   roleID,
	})
	assert.ErrorIs(t, err, ErrUsernameOrEmailTaken)

	_, err = service.Register(RegisterInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "supersecret",
		RoleID:   roleID,
	})
	assert.ErrorIs(t, err, ErrUsernameOrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	service := newAuthService(t)
	roleID := developerRoleID(t, service)

	_, err := service.Register(RegisterInput{Username: "  ", Email: "a@example.com", Password: "supersecret", RoleID: roleID})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = service.Register(RegisterInput{Username: "alice", Email: "", Password: "supersecret", RoleID: roleID})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = service.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "short", RoleID: roleID})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = service.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "supersecret", RoleID: 9999})
	assert.ErrorIs(t, err, ErrInvalidRoleID)
}

func TestLogin(t *testing.T) {
	service := newAuthService(t)
	roleID := developerRoleID(t, service)

	_, err := service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		RoleID:   roleID,
	})
	require.NoError(t, err)

	user, err := service.Login(LoginInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleDeveloper, user.Role.Name)

	_, err = service.Login(LoginInput{Username: "alice", Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
