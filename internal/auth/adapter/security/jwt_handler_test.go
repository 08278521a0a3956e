package security_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"asset-manager/internal/auth/adapter/security"
	"asset-manager/internal/auth/config"
	"asset-manager/internal/auth/domain/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type JWTTestSuite struct {
	suite.Suite
	config  *config.Config
	service *security.JWTokenService
}

func (suite *JWTTestSuite) SetupTest() {
	suite.config = &config.Config{
		Enabled:        true,
		JWTSecretKey:   "test-secret-key-32-characters-long-12345",
		JWTIssuer:      "asset-manager",
		AccessTokenTTL: 15 * time.Minute,
	}

	service, err := security.NewJWTokenService(suite.config)
	require.NoError(suite.T(), err)
	suite.service = service
}

func (suite *JWTTestSuite) sign(claims *repository.Claims, secret string) string {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(suite.T(), err)
	return tokenString
}

func (suite *JWTTestSuite) TestNewJWTokenService_ValidationErrors() {
	testCases := []struct {
		name         string
		modifyConfig func(*config.Config)
		expectedErr  string
	}{
		{
			name:         "empty secret key",
			modifyConfig: func(cfg *config.Config) { cfg.JWTSecretKey = "" },
			expectedErr:  "jwt secret key cannot be empty",
		},
		{
			name:         "empty issuer",
			modifyConfig: func(cfg *config.Config) { cfg.JWTIssuer = "" },
			expectedErr:  "jwt issuer cannot be empty",
		},
		{
			name:         "negative TTL",
			modifyConfig: func(cfg *config.Config) { cfg.AccessTokenTTL = -1 * time.Minute },
			expectedErr:  "jwt access token TTL must be positive",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			cfg := *suite.config
			tc.modifyConfig(&cfg)

			service, err := security.NewJWTokenService(&cfg)

			assert.Nil(suite.T(), service)
			assert.ErrorContains(suite.T(), err, tc.expectedErr)
		})
	}
}

func (suite *JWTTestSuite) TestGenerateToken_Claims() {
	tokenString, err := suite.service.GenerateToken(context.Background(), "erinoverview")
	require.NoError(suite.T(), err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(suite.config.JWTSecretKey), nil
	})
	require.NoError(suite.T(), err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "erinoverview", claims["userID"])
	assert.Equal(suite.T(), "erinoverview", claims["sub"])
	assert.Equal(suite.T(), "asset-manager", claims["iss"])

	_, err = suite.service.GenerateToken(context.Background(), "")
	assert.Error(suite.T(), err)
}

func (suite *JWTTestSuite) TestValidateToken_RoundTrip() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		userID := fmt.Sprintf("user-%d", i)
		tokenString, err := suite.service.GenerateToken(ctx, userID)
		require.NoError(suite.T(), err)

		claims, err := suite.service.ValidateToken(ctx, tokenString)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), userID, claims.UserID)
		assert.Equal(suite.T(), suite.config.JWTIssuer, claims.Issuer)
	}
}

func (suite *JWTTestSuite) TestValidateToken_Rejections() {
	now := time.Now()
	valid := func() *repository.Claims {
		return &repository.Claims{
			UserID: "erinoverview",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    suite.config.JWTIssuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))

	otherIssuer := valid()
	otherIssuer.Issuer = "someone-else"

	noUser := valid()
	noUser.UserID = ""

	testCases := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{"expired", suite.sign(expired, suite.config.JWTSecretKey), security.ErrTokenExpired},
		{"wrong secret", suite.sign(valid(), "different-secret-key-32-chars-long"), security.ErrTokenSignatureInvalid},
		{"wrong issuer", suite.sign(otherIssuer, suite.config.JWTSecretKey), security.ErrTokenInvalid},
		{"no user", suite.sign(noUser, suite.config.JWTSecretKey), security.ErrTokenInvalid},
		{"empty token", "", security.ErrTokenInvalid},
		{"malformed jwt", "header.payload", security.ErrTokenInvalid},
		{"random string", "not-a-jwt-token", security.ErrTokenInvalid},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			claims, err := suite.service.ValidateToken(context.Background(), tc.token)

			assert.Nil(suite.T(), claims)
			assert.Equal(suite.T(), tc.expectedErr, err)
		})
	}
}

func TestJWTTestSuite(t *testing.T) {
	suite.Run(t, new(JWTTestSuite))
}

func BenchmarkValidateToken(b *testing.B) {
	cfg := &config.Config{
		JWTSecretKey:   "test-secret-key-32-characters-long-12345",
		JWTIssuer:      "asset-manager",
		AccessTokenTTL: 15 * time.Minute,
	}
	service, _ := security.NewJWTokenService(cfg)
	ctx := context.Background()

	token, _ := service.GenerateToken(ctx, "erinoverview")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.ValidateToken(ctx, token)
	}
}
