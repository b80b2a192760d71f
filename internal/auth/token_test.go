package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_GenerateAndValidate(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour, 24*time.Hour)

	access, refresh, err := tg.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	userID, err := tg.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	assert.NoError(t, tg.ValidateRefreshToken(refresh))
}

func TestTokenGenerator_TypeMismatch(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour, 24*time.Hour)

	access, refresh, err := tg.GenerateTokens(1)
	require.NoError(t, err)

	// A refresh token is not an access token and vice versa
	_, err = tg.ValidateAccessToken(refresh)
	assert.Error(t, err)

	assert.Error(t, tg.ValidateRefreshToken(access))
}

func TestTokenGenerator_WrongSecret(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour, 24*time.Hour)
	other := NewTokenGenerator("other-secret", time.Hour, 24*time.Hour)

	access, refresh, err := tg.GenerateTokens(1)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(access)
	assert.Error(t, err)

	assert.Error(t, other.ValidateRefreshToken(refresh))
}

func TestTokenGenerator_Expired(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute, -time.Minute)

	access, refresh, err := tg.GenerateTokens(1)
	require.NoError(t, err)

	_, err = tg.ValidateAccessToken(access)
	assert.Error(t, err)

	assert.Error(t, tg.ValidateRefreshToken(refresh))
}

// Refresh tokens issued back-to-back land in the same second; they must
// still differ, or two users could end up holding the same token string.
func TestTokenGenerator_RefreshTokensAreUnique(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour, 24*time.Hour)

	_, first, err := tg.GenerateTokens(1)
	require.NoError(t, err)
	_, second, err := tg.GenerateTokens(2)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, tg.ValidateRefreshToken(first))
	assert.NoError(t, tg.ValidateRefreshToken(second))
}

func TestTokenGenerator_Garbage(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour, 24*time.Hour)

	_, err := tg.ValidateAccessToken("not-a-token")
	assert.Error(t, err)

	_, err = tg.ValidateAccessToken("")
	assert.Error(t, err)
}
