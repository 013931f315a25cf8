package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
	"github.com/virtual-defence/vds-backend/pkg/utils"
)

func TestSignupCreatesNonAdminWithHashedPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByEmail", mock.Anything, "ali@example.com").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Signup(context.Background(), "  Ali@Example.com ", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "ali@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, user.UID)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	ok, err := utils.VerifyPassword("secret123", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByEmail", mock.Anything, "ali@example.com").
		Return(&models.User{Email: "ali@example.com"}, nil)

	_, err := svc.Signup(context.Background(), "ali@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSigninVerifiesPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := new(MockUserRepository)
	svc := NewUserService(users)
	users.On("GetByEmail", mock.Anything, "ali@example.com").
		Return(&models.User{Email: "ali@example.com", PasswordHash: hash}, nil)

	user, err := svc.Signin(context.Background(), "ali@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", user.Email)

	_, err = svc.Signin(context.Background(), "ali@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSigninUnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, err := svc.Signin(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileValidatesUsername(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	err := svc.UpdateProfile(context.Background(), "u1", "x", "")
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	users.On("UpdateProfile", mock.Anything, "u1", "ali_khan", "https://cdn.example.com/p.png").Return(nil)
	err = svc.UpdateProfile(context.Background(), "u1", "ali_khan", "https://cdn.example.com/p.png")
	assert.NoError(t, err)
}

func TestUpdateProfileNormalizesUsernameBeforeStore(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("UpdateProfile", mock.Anything, "u1", "ali_khan", "").Return(nil)

	err := svc.UpdateProfile(context.Background(), "u1", "  Ali_Khan  ", "")
	require.NoError(t, err)
	users.AssertCalled(t, "UpdateProfile", mock.Anything, "u1", "ali_khan", "")
}
