package service

import (
	"context"
	"testing"
	"time"

	"devconnect/internal/identity"
	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() *identity.TokenManager {
	return identity.NewTokenManager("user-service-test-secret", time.Hour)
}

func TestRegisterCreatesUserWithHashedPasswordAndAvatar(t *testing.T) {
	userRepo := noopUserRepo()
	var created *models.User
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}

	svc := NewUserService(userRepo, noopProfileRepo(), testTokens())

	token, user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, "secret1", created.Password, "password must be stored hashed")
	assert.True(t, identity.CheckPassword("secret1", created.Password))
	assert.Contains(t, created.Avatar, "gravatar.com/avatar/")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 1, Email: "alice@example.com"}, nil
	}

	svc := NewUserService(userRepo, noopProfileRepo(), testTokens())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice Again",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	assertAppError(t, err, models.CodeDuplicateEmail)
	assert.Equal(t, "User already exists", err.(*models.AppError).Message)
}

func TestRegisterTokenResolvesToNewUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 42
		return nil
	}

	tokens := testTokens()
	svc := NewUserService(userRepo, noopProfileRepo(), tokens)

	token, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	hashed, err := identity.HashPassword("secret1")
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 7, Email: "alice@example.com", Password: hashed}, nil
	}

	tokens := testTokens()
	svc := NewUserService(userRepo, noopProfileRepo(), tokens)

	token, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hashed, err := identity.HashPassword("secret1")
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "alice@example.com" {
			return &models.User{ID: 7, Email: email, Password: hashed}, nil
		}
		return nil, nil
	}

	svc := NewUserService(userRepo, noopProfileRepo(), testTokens())

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret1")
	_, errWrongPw := svc.Login(context.Background(), "alice@example.com", "wrong")

	assertAppError(t, errUnknown, models.CodeInvalidCredentials)
	assertAppError(t, errWrongPw, models.CodeInvalidCredentials)
	assert.Equal(t, errUnknown.(*models.AppError).Message, errWrongPw.(*models.AppError).Message)
}

func TestDeleteAccountRemovesProfileThenUser(t *testing.T) {
	var order []string

	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, id uint) error {
		order = append(order, "user")
		assert.Equal(t, uint(7), id)
		return nil
	}

	profileRepo := noopProfileRepo()
	profileRepo.deleteByUserIDFn = func(_ context.Context, userID uint) error {
		order = append(order, "profile")
		assert.Equal(t, uint(7), userID)
		return nil
	}

	svc := NewUserService(userRepo, profileRepo, testTokens())

	require.NoError(t, svc.DeleteAccount(context.Background(), 7))
	assert.Equal(t, []string{"profile", "user"}, order)
}

func TestDeleteAccountAbortsWhenProfileDeleteFails(t *testing.T) {
	userDeleted := false
	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, _ uint) error {
		userDeleted = true
		return nil
	}

	profileRepo := noopProfileRepo()
	profileRepo.deleteByUserIDFn = func(_ context.Context, _ uint) error {
		return models.NewInternalError(assert.AnError)
	}

	svc := NewUserService(userRepo, profileRepo, testTokens())

	err := svc.DeleteAccount(context.Background(), 7)
	assertAppError(t, err, models.CodeInternal)
	assert.False(t, userDeleted)
}
