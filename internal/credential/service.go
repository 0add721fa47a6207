package credential

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
// The two cases are deliberately indistinguishable to callers so that login
// responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minUsernameLen = 5

// Service manages the account lifecycle and answers credential checks. It is
// the only component that reads or writes password hashes.
type Service struct {
	repo   Repository
	hasher Hasher
}

// NewService creates a credential service around the given repository.
func NewService(repo Repository, hasher Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// Register creates a new account, storing only the password hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < minUsernameLen {
		return User{}, errors.New("username must be at least 5 characters long")
	}
	if input.Email == "" {
		return User{}, errors.New("email is required")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		Username:     username,
		PasswordHash: hash,
		Email:        input.Email,
		Birthday:     input.Birthday,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies a login attempt. Every failure mode — unknown user,
// wrong password, corrupt stored hash — collapses to ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Get fetches a user by username.
func (s *Service) Get(ctx context.Context, username string) (User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// UpdateInput carries the mutable profile fields. Empty fields are left
// unchanged; a non-empty Password is re-hashed before storage.
type UpdateInput struct {
	Password string
	Email    string
	Birthday *time.Time
}

// Update rewrites a user's profile, replacing the password hash only when a
// new secret is supplied.
func (s *Service) Update(ctx context.Context, username string, input UpdateInput) (User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Remove deletes an account.
func (s *Service) Remove(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

// AddFavorite records a movie on the user's favorites list.
func (s *Service) AddFavorite(ctx context.Context, username, movieID string) (User, error) {
	if err := s.repo.AddFavorite(ctx, username, movieID); err != nil {
		return User{}, err
	}
	return s.repo.FindByUsername(ctx, username)
}

// RemoveFavorite drops a movie from the user's favorites list.
func (s *Service) RemoveFavorite(ctx context.Context, username, movieID string) (User, error) {
	if err := s.repo.RemoveFavorite(ctx, username, movieID); err != nil {
		return User{}, err
	}
	return s.repo.FindByUsername(ctx, username)
}
