// Package services contains server-side business logic built on top of the
// repository layer. Services validate input, enforce ownership, and own the
// transaction boundaries.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shelflog/internal/common"
	"shelflog/internal/server/auth"
	"shelflog/internal/server/models"
	"shelflog/internal/server/repositories/repomanager"
	"shelflog/internal/validatex"
)

// Credentials are the fields submitted by the registration and login forms.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=8"`
}

// UserService handles account registration and credential verification.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService bound to the given database handle.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register validates the credentials, hashes the password, and creates the
// account. A taken username yields common.ErrDuplicateUsername; validation
// failures yield validatex.FieldErrors.
func (s *UserService) Register(ctx context.Context, creds Credentials) (*models.User, error) {
	if ferrs := validatex.Struct(creds); ferrs != nil {
		return nil, ferrs
	}

	digest, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, creds.Username, digest)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// GetByUsername loads a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

// Login verifies the username/password pair. An unknown username and a wrong
// password are indistinguishable to the caller: both yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if !auth.CheckPassword(user.PasswordDigest, password) {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}
