package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() TokenConfig {
	cfg := DefaultTokenConfig()
	cfg.JWTSecret = "test-secret"
	return cfg
}

func TestIssueTokens_RoundTrip(t *testing.T) {
	cfg := testTokenConfig()

	pair, err := IssueTokens(cfg, "usr-1", "karim@test.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseToken(cfg, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.Equal(t, "karim@test.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "access", claims.Type)

	refresh, err := ParseToken(cfg, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", refresh.Subject)
	assert.Equal(t, "refresh", refresh.Type)
	assert.Empty(t, refresh.Email)
}

func TestParseToken_WrongSecret(t *testing.T) {
	pair, err := IssueTokens(testTokenConfig(), "usr-1", "karim@test.com", "user")
	require.NoError(t, err)

	bad := testTokenConfig()
	bad.JWTSecret = "other-secret"
	_, err = ParseToken(bad, pair.AccessToken)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTokenTTL = -time.Minute

	pair, err := IssueTokens(cfg, "usr-1", "karim@test.com", "user")
	require.NoError(t, err)

	_, err = ParseToken(cfg, pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenConfig_Enabled(t *testing.T) {
	assert.False(t, DefaultTokenConfig().Enabled())
	assert.True(t, testTokenConfig().Enabled())
}
