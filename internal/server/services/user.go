// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and resolving the user
// behind a bearer token.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/server/auth"
	"github.com/dmitrijs2005/cadastr/internal/server/config"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/dmitrijs2005/cadastr/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint an access token
// - Authenticate: map a bearer token back to its user
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account. The existence pre-check gives the common
// case a friendly error; a concurrent registration slipping between the
// check and the insert still comes back as ErrEmailExists because the
// repository translates the store's unique violation.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hash,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return nil, common.ErrEmailExists
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login verifies the credentials and returns a bearer token bound to the
// user's email. Unknown emails and wrong passwords are indistinguishable to
// the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", common.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", common.ErrUserInactive
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Authenticate verifies the token and loads the user behind its subject.
// A token for a user that no longer exists is unauthenticated, not a
// server error.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
