package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")
	userID := uuid.New()

	token, err := tm.IssueAccessToken(userID, "alice", []string{"editor"}, false)
	require.NoError(t, err)

	claims, err := tm.Verify(token, TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, []string{"editor"}, claims.Roles)
}

func TestRefreshTokenCannotActAsAccessToken(t *testing.T) {
	tm := NewTokenManager("test-secret")

	refresh, err := tm.IssueRefreshToken(uuid.New(), "alice", []string{"admin"})
	require.NoError(t, err)

	_, err = tm.Verify(refresh, TokenTypeAccess)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tm.Verify(refresh, TokenTypeRefresh)
	require.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.issue(uuid.New(), "alice", []string{"admin"}, TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token, TokenTypeAccess)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret")
	other := NewTokenManager("other-secret")

	token, err := tm.IssueAccessToken(uuid.New(), "alice", nil, false)
	require.NoError(t, err)

	_, err = other.Verify(token, TokenTypeAccess)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
