package service

import (
	"testing"

	"tourhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenProvider mocks the security.TokenProvider interface
type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) Issue(username string, roles []string) (string, error) {
	args := m.Called(username, roles)
	return args.String(0), args.Error(1)
}

func (m *MockTokenProvider) IsValid(tokenString string) bool {
	args := m.Called(tokenString)
	return args.Bool(0)
}

func (m *MockTokenProvider) Username(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

func (m *MockTokenProvider) Roles(tokenString string) ([]string, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestLoadByUsername_Success(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	user := &models.User{
		Username: "alice",
		Password: "$2a$10$somestoredhash",
		Roles:    []models.Role{{Name: "ROLE_CSR"}, {Name: "ROLE_CUSTOMER"}},
	}
	userRepo.On("FindByUsername", "alice").Return(user, nil)

	principal, err := svc.LoadByUsername("alice")

	assert.NoError(t, err)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, "$2a$10$somestoredhash", principal.Password)
	assert.Equal(t, []string{"ROLE_CSR", "ROLE_CUSTOMER"}, principal.Authorities)
	assert.False(t, principal.AccountExpired)
	assert.False(t, principal.AccountLocked)
	assert.False(t, principal.CredentialsExpired)
	assert.False(t, principal.Disabled)
}

func TestLoadByUsername_NotFoundIsHardFailure(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	principal, err := svc.LoadByUsername("ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, principal)
}

func TestLoadByToken_InvalidTokenReturnsNil(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	tokenProvider.On("IsValid", "garbage").Return(false)

	principal := svc.LoadByToken("garbage")

	assert.Nil(t, principal)
	userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
}

func TestLoadByToken_BuildsPrincipalFromClaims(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	tokenProvider.On("IsValid", "valid-token").Return(true)
	tokenProvider.On("Username", "valid-token").Return("alice", nil)
	tokenProvider.On("Roles", "valid-token").Return([]string{"ROLE_CSR"}, nil)

	principal := svc.LoadByToken("valid-token")

	assert.NotNil(t, principal)
	assert.Equal(t, "alice", principal.Username)
	// the token carries no password; the field stays empty, never unset
	assert.Equal(t, "", principal.Password)
	assert.Equal(t, []string{"ROLE_CSR"}, principal.Authorities)
	// no database round-trip on the claims-only path
	userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
}

func TestLoadByTokenAndDatabase_InvalidTokenReturnsNilNil(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	tokenProvider.On("IsValid", "garbage").Return(false)

	principal, err := svc.LoadByTokenAndDatabase("garbage")

	assert.NoError(t, err)
	assert.Nil(t, principal)
}

func TestLoadByTokenAndDatabase_ReflectsCurrentRoles(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	// token was issued while alice still had the CSR role
	tokenProvider.On("IsValid", "stale-token").Return(true)
	tokenProvider.On("Username", "stale-token").Return("alice", nil)
	tokenProvider.On("Roles", "stale-token").Return([]string{"ROLE_CSR"}, nil)

	// the database has since been updated
	user := &models.User{
		Username: "alice",
		Password: "$2a$10$somestoredhash",
		Roles:    []models.Role{{Name: "ROLE_CUSTOMER"}},
	}
	userRepo.On("FindByUsername", "alice").Return(user, nil)

	fromClaims := svc.LoadByToken("stale-token")
	fromDatabase, err := svc.LoadByTokenAndDatabase("stale-token")

	assert.NoError(t, err)
	assert.Equal(t, []string{"ROLE_CSR"}, fromClaims.Authorities)
	assert.Equal(t, []string{"ROLE_CUSTOMER"}, fromDatabase.Authorities)
	assert.NotEqual(t, fromClaims.Authorities, fromDatabase.Authorities)
}

func TestLoadByTokenAndDatabase_DeletedUserIsHardFailure(t *testing.T) {
	tokenProvider := new(MockTokenProvider)
	userRepo := new(MockUserRepository)
	svc := NewPrincipalService(tokenProvider, userRepo)

	tokenProvider.On("IsValid", "orphan-token").Return(true)
	tokenProvider.On("Username", "orphan-token").Return("deleted", nil)
	userRepo.On("FindByUsername", "deleted").Return(nil, gorm.ErrRecordNotFound)

	principal, err := svc.LoadByTokenAndDatabase("orphan-token")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, principal)
}
