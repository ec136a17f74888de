// Package auth issues and verifies the signed session tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types. A refresh token can never be used where an access token is
// expected, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	accessTokenTTL     = 24 * time.Hour
	rememberMeTokenTTL = 30 * 24 * time.Hour
	refreshTokenTTL    = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims are the JWT claims carried by both token types.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a TokenManager signing with the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// IssueAccessToken signs an access token. With rememberMe the token lives 30
// days instead of 24 hours.
func (m *TokenManager) IssueAccessToken(userID uuid.UUID, username string, roles []string, rememberMe bool) (string, error) {
	ttl := accessTokenTTL
	if rememberMe {
		ttl = rememberMeTokenTTL
	}
	return m.issue(userID, username, roles, TokenTypeAccess, ttl)
}

// IssueRefreshToken signs a refresh token.
func (m *TokenManager) IssueRefreshToken(userID uuid.UUID, username string, roles []string) (string, error) {
	return m.issue(userID, username, roles, TokenTypeRefresh, refreshTokenTTL)
}

func (m *TokenManager) issue(userID uuid.UUID, username string, roles []string, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Roles:     roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and checks its type discriminator.
// Expired tokens yield ErrTokenExpired; every other failure, including a
// wrong token type, yields ErrTokenInvalid.
func (m *TokenManager) Verify(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.TokenType != wantType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
