// Package auth implements issuing and verifying the signed tokens that carry
// request identity: short-lived access tokens and long-lived refresh tokens,
// both HS256-signed and tagged with a kind claim and a unique jti.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dsmirnov87/taskvault/internal/common"
)

// TokenKind distinguishes access tokens from refresh tokens. A token of one
// kind is never accepted where the other is required.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims embeds the registered JWT claims and adds the token kind. Identity
// travels in Subject, the unique token id in ID (jti).
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"kind"`
}

// Username returns the identity the token was issued for.
func (c *Claims) Username() string { return c.Subject }

// JTI returns the unique token identifier used for revocation bookkeeping.
func (c *Claims) JTI() string { return c.ID }

// TokenManager issues and verifies tokens. It is constructed with the
// signing secret and per-kind lifetimes instead of reading global state.
type TokenManager struct {
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewTokenManager(secret []byte, accessValidity, refreshValidity time.Duration) *TokenManager {
	return &TokenManager{
		secret:          secret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// Issue creates a signed token of the given kind bound to username, with a
// freshly generated jti and an expiry of now plus the kind's lifetime.
func (m *TokenManager) Issue(username string, kind TokenKind) (string, error) {
	validity := m.accessValidity
	if kind == KindRefresh {
		validity = m.refreshValidity
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Kind: kind,
	})
	return token.SignedString(m.secret)
}

// Verify parses tokenString, checks the signature and expiry, and confirms
// the token is of the expected kind. A refresh token presented where an
// access token is required fails with ErrWrongTokenKind, and vice versa.
func (m *TokenManager) Verify(tokenString string, expected TokenKind) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.Kind != expected {
		return nil, common.ErrWrongTokenKind
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
