package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", time.Hour, 24*time.Hour)

	access, refresh, err := manager.GenerateTokenPair(42, "alice", true)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := manager.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestRefreshTokenIsNotAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", time.Hour, 24*time.Hour)

	access, refresh, err := manager.GenerateTokenPair(42, "alice", false)
	require.NoError(t, err)

	// 刷新Token不能当访问Token用
	_, err = manager.ValidateToken(refresh)
	assert.Error(t, err)

	// 访问Token不能用于刷新
	_, err = manager.RefreshToken(access)
	assert.Error(t, err)

	// 刷新得到的新访问Token继承声明
	newAccess, err := manager.RefreshToken(refresh)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", "HS256", time.Hour, 24*time.Hour)

	access, _, err := manager.GenerateTokenPair(1, "alice", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", -time.Minute, 24*time.Hour)

	access, _, err := manager.GenerateTokenPair(1, "alice", false)
	require.NoError(t, err)

	_, err = manager.ValidateToken(access)
	assert.Error(t, err)
}
