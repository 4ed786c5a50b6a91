// auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/lostfound_chat/config"
)

func testManager(accessLifetime, refreshLifetime time.Duration) *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:          "super-secret-key",
		AccessLifetime:  accessLifetime,
		RefreshLifetime: refreshLifetime,
	})
}

func TestIssueAndValidatePair(t *testing.T) {
	tm := testManager(time.Hour, 24*time.Hour)

	pair, err := tm.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	userID, err := tm.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestRefreshRotatesPair(t *testing.T) {
	tm := testManager(time.Hour, 24*time.Hour)

	pair, err := tm.IssuePair(7)
	require.NoError(t, err)

	// Подписи содержат время выпуска с точностью до секунды
	time.Sleep(1100 * time.Millisecond)

	rotated, err := tm.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	userID, err := tm.ValidateAccess(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	tm := testManager(time.Hour, 24*time.Hour)

	pair, err := tm.IssuePair(7)
	require.NoError(t, err)

	// Access-токен нельзя использовать для обновления пары
	_, err = tm.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestValidateRejectsRefreshToken(t *testing.T) {
	tm := testManager(time.Hour, 24*time.Hour)

	pair, err := tm.IssuePair(7)
	require.NoError(t, err)

	// Refresh-токен не дает доступа к API
	_, err = tm.ValidateAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestExpiredToken(t *testing.T) {
	tm := testManager(-time.Minute, -time.Minute)

	pair, err := tm.IssuePair(1)
	require.NoError(t, err)

	_, err = tm.ValidateAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	tm := testManager(time.Hour, 24*time.Hour)
	other := NewTokenManager(config.JWTConfig{
		Secret:          "another-secret",
		AccessLifetime:  time.Hour,
		RefreshLifetime: 24 * time.Hour,
	})

	pair, err := tm.IssuePair(1)
	require.NoError(t, err)

	_, err = other.ValidateAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	tm := testManager(time.Hour, 24*time.Hour)

	_, err := tm.ValidateAccess("не.токен.вовсе")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
