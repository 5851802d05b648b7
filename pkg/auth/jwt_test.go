package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("user-1", "ana@example.com", "attorney")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "attorney", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, err = m.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	access, err := m.GenerateToken("user-1", "a@b.c", "client")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRejectedTokens(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)

	expired := NewJWTManager("secret", -time.Minute, time.Hour)
	token, err := expired.GenerateToken("user-1", "a@b.c", "client")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign := NewJWTManager("other", time.Hour, time.Hour)
	token, err = foreign.GenerateToken("user-1", "a@b.c", "client")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1", TokenType: tokenTypeAccess}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ValidateToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
