// Package service implements the application's business rules on top of the
// repositories: account lifecycle, profile management, and the post feed with
// its ownership checks.
package service

import (
	"context"

	"devconnect/internal/cache"
	"devconnect/internal/gravatar"
	"devconnect/internal/identity"
	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// UserService owns account records: registration, login, current-identity
// loading and cascading deletion.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokens      *identity.TokenManager
}

// NewUserService creates a UserService.
func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokens *identity.TokenManager,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
	}
}

// RegisterInput is the shape-validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and returns a token bound to it. The avatar is
// derived deterministically from the email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, models.NewDuplicateEmailError()
	}

	hashed, err := identity.HashPassword(in.Password)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Avatar:   gravatar.URL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return token, user, nil
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password return the same error so callers cannot probe which accounts
// exist.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewInvalidCredentialsError()
	}

	if !identity.CheckPassword(password, user.Password) {
		return "", models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// GetCurrent loads the acting account. The ID comes from the verified token,
// never from client-supplied input.
func (s *UserService) GetCurrent(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount removes the account's profile (if any), then the account
// itself. The account's posts are intentionally left in place; they carry
// their own author snapshot.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}
