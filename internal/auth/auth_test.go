package auth

import (
	"context"
	"testing"
	"time"

	"asset-manager/internal/auth/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthModule_Disabled(t *testing.T) {
	module, err := NewAuthModule(&config.Config{})
	require.NoError(t, err)

	assert.False(t, module.Enabled())
	assert.Nil(t, module.TokenService())
	assert.Empty(t, module.Guards())
}

func TestNewAuthModule_Enabled(t *testing.T) {
	module, err := NewAuthModule(&config.Config{
		Enabled:        true,
		JWTSecretKey:   "test-secret-key-32-characters-long-12345",
		JWTIssuer:      "asset-manager",
		AccessTokenTTL: time.Minute,
	})
	require.NoError(t, err)

	assert.True(t, module.Enabled())
	assert.Len(t, module.Guards(), 1)

	token, err := module.TokenService().GenerateToken(context.Background(), "garygeeke")
	require.NoError(t, err)
	claims, err := module.TokenService().ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "garygeeke", claims.UserID)
}

func TestNewAuthModule_InvalidConfig(t *testing.T) {
	_, err := NewAuthModule(&config.Config{Enabled: true})
	assert.Error(t, err)
}
