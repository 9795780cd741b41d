package service

import (
	"errors"

	"tourhub/internal/http-api/repository"
	"tourhub/internal/security"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// PrincipalService resolves bearer tokens and usernames into authenticated
// principals. Token-based lookups treat an invalid token as an expected
// outcome and signal it with a nil principal rather than an error; a missing
// user in LoadByUsername is a hard failure.
type PrincipalService interface {
	LoadByUsername(username string) (*security.Principal, error)
	LoadByToken(tokenString string) *security.Principal
	LoadByTokenAndDatabase(tokenString string) (*security.Principal, error)
}

type principalService struct {
	tokenProvider security.TokenProvider
	userRepo      repository.UserRepository
}

func NewPrincipalService(tokenProvider security.TokenProvider, userRepo repository.UserRepository) PrincipalService {
	return &principalService{
		tokenProvider: tokenProvider,
		userRepo:      userRepo,
	}
}

// LoadByUsername looks the user up in the database and builds a principal
// carrying the stored password hash and the user's current roles.
func (s *principalService) LoadByUsername(username string) (*security.Principal, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &security.Principal{
		Username:    user.Username,
		Password:    user.Password,
		Authorities: user.RoleNames(),
	}, nil
}

// LoadByToken builds a principal purely from token claims, with no database
// round-trip. Returns nil for an invalid token. The password field stays an
// empty string because downstream consumers expect it to be set.
func (s *principalService) LoadByToken(tokenString string) *security.Principal {
	if !s.tokenProvider.IsValid(tokenString) {
		return nil
	}

	username, err := s.tokenProvider.Username(tokenString)
	if err != nil {
		return nil
	}
	roles, err := s.tokenProvider.Roles(tokenString)
	if err != nil {
		return nil
	}

	return &security.Principal{
		Username:    username,
		Password:    "",
		Authorities: roles,
	}
}

// LoadByTokenAndDatabase extracts the username from a valid token and re-runs
// the database lookup, so authorities reflect current state rather than
// possibly stale claims. Returns (nil, nil) for an invalid token.
func (s *principalService) LoadByTokenAndDatabase(tokenString string) (*security.Principal, error) {
	if !s.tokenProvider.IsValid(tokenString) {
		return nil, nil
	}

	username, err := s.tokenProvider.Username(tokenString)
	if err != nil {
		return nil, nil
	}
	return s.LoadByUsername(username)
}
