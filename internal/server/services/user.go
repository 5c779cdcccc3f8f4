// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, token
// issuance/refresh, and revocation on logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsmirnov87/taskvault/internal/common"
	"github.com/dsmirnov87/taskvault/internal/server/auth"
	"github.com/dsmirnov87/taskvault/internal/server/models"
	"github.com/dsmirnov87/taskvault/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: create users and mint their first token pair
//   - Login: verify credentials and mint tokens
//   - Refresh: mint a new access token from a valid refresh token identity
//   - Logout: append a token's jti to the revocation ledger
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
}

// NewUserService constructs a UserService using repositories and the token manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password and returns the
// user plus a fresh token pair. A username or email collision yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorInternal
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.generateTokenPair(username)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the password against the stored bcrypt hash and, on success,
// returns a new TokenPair. An unknown username yields common.ErrorNotFound
// (the API reports it differently from a bad password).
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(username)
}

// UpdateEmail sets the email of the named user. A blank email keeps the
// current value. Uniqueness against other users is not re-checked here; a
// collision surfaces as a database error from the unique index.
func (s *UserService) UpdateEmail(ctx context.Context, username, email string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if email == "" {
		email = user.Email
	}
	if err := repo.UpdateEmail(ctx, username, email); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// Refresh mints a new access token for the identity carried by an already
// verified refresh token. The refresh token itself stays valid until it
// expires or is revoked.
func (s *UserService) Refresh(ctx context.Context, username string) (string, error) {
	access, err := s.tokens.Issue(username, auth.KindAccess)
	if err != nil {
		return "", common.ErrorInternal
	}
	return access, nil
}

// Logout appends the token's jti to the revocation ledger. Revoking an
// already-revoked jti is a no-op success.
func (s *UserService) Logout(ctx context.Context, jti string) error {
	repo := s.repomanager.RevokedTokens(s.db)
	if err := repo.Revoke(ctx, jti); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether the jti is present in the revocation ledger.
// The middleware consults it on every protected request.
func (s *UserService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	repo := s.repomanager.RevokedTokens(s.db)
	return repo.IsRevoked(ctx, jti)
}

// GetByUsername resolves a user record for an authenticated identity.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByUsername(ctx, username)
}

func (s *UserService) generateTokenPair(username string) (*TokenPair, error) {
	access, err := s.tokens.Issue(username, auth.KindAccess)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.tokens.Issue(username, auth.KindRefresh)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
