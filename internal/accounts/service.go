// Package accounts implements the credential store and user directory:
// registration, password verification and profile lookups. The stored
// password hash never crosses the package boundary.
package accounts

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BramFam96/messagely-v1/internal/apperrors"
	"github.com/BramFam96/messagely-v1/internal/config"
	"github.com/BramFam96/messagely-v1/internal/models"
	"github.com/BramFam96/messagely-v1/internal/repositories"
)

// RegisterParams carries the fields needed to create an account.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Service owns credential hashing and user directory access.
type Service struct {
	users repositories.UserRepository
	cost  int
}

// NewService constructs a Service. The bcrypt cost is clamped into the
// range the hash function accepts; out-of-range values fall back to the
// production default.
func NewService(users repositories.UserRepository, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = config.DefaultBcryptCost
	}
	return &Service{users: users, cost: bcryptCost}
}

// Register hashes the password and creates the account. A taken username
// surfaces as a ConflictError; the returned record never carries the hash.
func (s *Service) Register(ctx context.Context, params RegisterParams) (models.User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return models.User{}, &apperrors.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if params.Password == "" {
		return models.User{}, &apperrors.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
	})
	if err != nil {
		return models.User{}, err
	}

	created.PasswordHash = ""
	return created, nil
}

// Authenticate reports whether the username/password pair is valid. An
// unknown username and a wrong password are both a plain false, so the
// caller cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	hash, err := s.users.PasswordHash(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// TouchLogin stamps the user's last successful login.
func (s *Service) TouchLogin(ctx context.Context, username string) error {
	return s.users.TouchLogin(ctx, username)
}

// ListUsers returns every registered public profile.
func (s *Service) ListUsers(ctx context.Context) ([]models.Profile, error) {
	return s.users.ListUsers(ctx)
}

// GetUser returns the full profile for the username.
func (s *Service) GetUser(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
