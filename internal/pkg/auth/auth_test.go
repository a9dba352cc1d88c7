package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Restaurant API"
	cfg.JWT.Secret = "test-secret-for-signing-tokens-only"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func TestPasswordManager_HashAndVerify(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, pm.VerifyPassword("correct horse battery", hash))
	assert.Error(t, pm.VerifyPassword("wrong password", hash))
}

func TestPasswordManager_RejectsBadLengths(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	_, err := pm.HashPassword("short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8")

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = pm.HashPassword(string(long))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no more than 72")
}

func TestJWTManager_RoundTrip(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateAccessToken("admin")
	require.NoError(t, err)

	claims, err := jm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "admin:admin", claims.Subject)
}

func TestJWTManager_RejectsTamperedToken(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateAccessToken("admin")
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-completely-different-signing-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
}
