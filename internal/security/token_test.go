package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, err := tm.GenerateAccessToken(7, "jane@example.com", "member", true)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.True(t, claims.IsActive)
	assert.False(t, claims.IsAdmin())
}

func TestAdminClaims(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, err := tm.GenerateAccessToken(1, "admin@example.com", "admin", true)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, 60).GenerateAccessToken(7, "jane@example.com", "member", true)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-another-secret-ok", 60).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := &tokenManager{secret: []byte(testSecret), expiry: -time.Minute}

	token, err := tm.GenerateAccessToken(7, "jane@example.com", "member", true)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
