package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", time.Hour, 72*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := newTestManager()

	token, expiresAt, err := m.GenerateAccessToken("user-123", "user@example.com", "staff")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// Refresh token vẫn là token hợp lệ...
	_, err = m.ValidateToken(refresh)
	require.NoError(t, err)

	// ...nhưng không dùng được làm access token
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("different-secret", time.Hour, 72*time.Hour)

	token, _, err := m.GenerateAccessToken("user-123", "", "reader")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 72*time.Hour)

	token, _, err := m.GenerateAccessToken("user-123", "", "reader")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenBlacklistKey(t *testing.T) {
	key := TokenBlacklistKey("some.jwt.token")

	assert.True(t, strings.HasPrefix(key, "auth:blacklist:"))
	// Deterministic - cùng token luôn cho cùng key
	assert.Equal(t, key, TokenBlacklistKey("some.jwt.token"))
	// Raw token không xuất hiện trong key
	assert.NotContains(t, key, "some.jwt.token")
	assert.NotEqual(t, key, TokenBlacklistKey("other.jwt.token"))
}
