// Package services contains server-side business logic. This file implements
// UserService: registration, login, token refresh and identity lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/repomanager"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Register: create users and mint a token
// - Login: verify credentials and mint a token
// - Refresh: exchange a (recently) valid token for a fresh one
// - Authenticate / Me: resolve a token or id to an identity
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      TokenIssuer
	hasher      PasswordHasher
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer TokenIssuer, hasher PasswordHasher, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		hasher:      hasher,
		logger:      l.With("module", "user_service"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates req, stores the user with a bcrypt hash and returns a
// token for it. A taken email is reported as a validation error on "email".
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Name: req.Name, Email: req.Email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewValidationError("email", "The email has already been taken.")
		}
		s.logger.Error(ctx, "registration failed", "email", req.Email, "error", err)
		return nil, common.ErrorInternal
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks the credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	req.Email = normalizeEmail(req.Email)

	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn comparable time so absent accounts are not observable
			_ = s.hasher.Compare(s.getDummyHash(), req.Password)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "email", req.Email, "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Refresh returns a new token for the subject of token. The typed issuer
// error is wrapped together with common.ErrorUnauthorized.
func (s *UserService) Refresh(ctx context.Context, token string) (string, error) {
	fresh, err := s.issuer.Refresh(token)
	if err != nil {
		s.logger.Info(ctx, "token refresh rejected", "reason", err)
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return fresh, nil
}

// Authenticate resolves a bearer token to a user id.
func (s *UserService) Authenticate(token string) (string, error) {
	userID, err := s.issuer.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return userID, nil
}

// Me returns the user behind an authenticated request. A token whose user
// no longer exists is treated as unauthorized.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Logout exists for symmetry. Tokens are stateless, so nothing is revoked.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	s.logger.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("edustream-dummy-password")
	})
	return s.dummyHash
}
