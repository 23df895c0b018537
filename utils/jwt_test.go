package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
)

func setTestJWTConfig(t *testing.T, ttl time.Duration) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenTTL = ttl
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGenerateAndParseJWTToken(t *testing.T) {
	setTestJWTConfig(t, time.Hour)

	user := &models.User{ID: 7, Email: "anna@wasatradfallning.se", Role: models.RoleUser}

	token, err := GenerateJWTToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "anna@wasatradfallning.se", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestParseJWTTokenRejectsWrongSecret(t *testing.T) {
	setTestJWTConfig(t, time.Hour)

	token, err := GenerateJWTToken(&models.User{ID: 1, Email: "x@y.se", Role: models.RoleAdmin})
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = ParseJWTToken(token)
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsExpired(t *testing.T) {
	setTestJWTConfig(t, -time.Minute)

	token, err := GenerateJWTToken(&models.User{ID: 1, Email: "x@y.se", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = ParseJWTToken(token)
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	setTestJWTConfig(t, time.Hour)

	_, err := ParseJWTToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenTTLRemaining(t *testing.T) {
	setTestJWTConfig(t, time.Hour)

	token, err := GenerateJWTToken(&models.User{ID: 2, Email: "a@b.se", Role: models.RoleUser})
	require.NoError(t, err)

	remaining := TokenTTLRemaining(token)
	assert.Greater(t, remaining, 55*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)

	assert.Equal(t, time.Duration(0), TokenTTLRemaining("garbage"))
}
