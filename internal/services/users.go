package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
	"github.com/virtual-defence/vds-backend/pkg/utils"
)

var (
	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService handles account creation and sign-in.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Signup creates an account with a fresh immutable uid and an argon2id
// password hash. New accounts are never admins.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signin verifies the password and returns the account.
func (s *UserService) Signin(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByUID loads an account by its immutable uid.
func (s *UserService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetByUID(ctx, uid)
}

// UpdateProfile sets the mutable profile fields (username, photo URL).
// Usernames are normalized to their stored form before the write.
func (s *UserService) UpdateProfile(ctx context.Context, uid, username, photoURL string) error {
	if username != "" {
		if err := utils.ValidateUsername(username); err != nil {
			return err
		}
		username = utils.NormalizeUsername(username)
	}
	return s.users.UpdateProfile(ctx, uid, username, photoURL)
}
