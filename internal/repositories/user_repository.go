package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/BramFam96/messagely-v1/internal/apperrors"
	"github.com/BramFam96/messagely-v1/internal/models"
)

const pqUniqueViolation = "23505"
const pqForeignKeyViolation = "23503"

// UserRepository abstracts user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.Profile, error)
	PasswordHash(ctx context.Context, username string) (string, error)
	TouchLogin(ctx context.Context, username string) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new user. A duplicate username surfaces as a
// ConflictError, never as a silent no-op.
func (r *UserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users (username, password_hash, first_name, last_name, phone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING username, password_hash, first_name, last_name, phone, joined_at, last_login_at`,
		user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Phone).
		StructScan(&created)
	if isPQError(err, pqUniqueViolation) {
		return models.User{}, &apperrors.ConflictError{Kind: "user", Key: user.Username}
	}
	return created, err
}

// GetUser fetches a full user record by username.
func (r *UserRepo) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT username, password_hash, first_name, last_name, phone, joined_at, last_login_at
        FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, &apperrors.NotFoundError{Kind: "user", Key: username}
	}
	return user, err
}

// ListUsers returns every public profile. Zero users is a valid empty
// result; only a failing query maps to UnavailableError.
func (r *UserRepo) ListUsers(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := r.db.SelectContext(ctx, &profiles, `SELECT username, first_name, last_name, phone FROM users`)
	if err != nil {
		return nil, &apperrors.UnavailableError{Op: "list users", Err: err}
	}
	return profiles, nil
}

// PasswordHash returns the stored credential hash for the username.
func (r *UserRepo) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.GetContext(ctx, &hash, `SELECT password_hash FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &apperrors.NotFoundError{Kind: "user", Key: username}
	}
	return hash, err
}

// TouchLogin stamps last_login_at with the current time.
func (r *UserRepo) TouchLogin(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE username=$1`, username)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return &apperrors.NotFoundError{Kind: "user", Key: username}
	}
	return nil
}

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
