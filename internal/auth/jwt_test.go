package auth

import (
	"testing"

	"waselni_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()

	prev := config.AppConfig
	t.Cleanup(func() { config.AppConfig = prev })

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 60 * 24
	config.AppConfig = cfg
}

func TestGenerateRefreshToken_UniquePerIssue(t *testing.T) {
	setTestConfig(t)

	first, err := GenerateRefreshToken("user-1", "sender")
	require.NoError(t, err)
	second, err := GenerateRefreshToken("user-1", "sender")
	require.NoError(t, err)

	// Повторный выпуск в ту же секунду дает другой токен
	assert.NotEqual(t, first, second)

	claims, err := ParseRefreshToken(second)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRefreshToken_RejectsAccessToken(t *testing.T) {
	setTestConfig(t)

	access, err := GenerateToken("user-1", "sender")
	require.NoError(t, err)

	_, err = ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
