package auth

import (
	"fmt"

	authhttp "asset-manager/internal/auth/adapter/http"
	"asset-manager/internal/auth/adapter/security"
	"asset-manager/internal/auth/config"
	"asset-manager/internal/auth/domain/repository"

	"github.com/gofiber/fiber/v2"
)

// AuthModule bundles the token service and the middleware built on it.
type AuthModule struct {
	tokenSvc repository.TokenService
	config   *config.Config
}

// NewAuthModule creates the module. When auth is disabled no token service is
// built and Guards returns nothing.
func NewAuthModule(cfg *config.Config) (*AuthModule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	module := &AuthModule{config: cfg}
	if !cfg.Enabled {
		return module, nil
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	module.tokenSvc = tokenSvc
	return module, nil
}

// Enabled reports whether calls must carry a bearer token.
func (am *AuthModule) Enabled() bool {
	return am.tokenSvc != nil
}

// TokenService returns the token service, or nil when auth is disabled.
func (am *AuthModule) TokenService() repository.TokenService {
	return am.tokenSvc
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return authhttp.NewAuthMiddleware(am.tokenSvc, am.config.CookieName)
}

// Guards returns the handlers to put in front of each user scoped route.
func (am *AuthModule) Guards() []fiber.Handler {
	if !am.Enabled() {
		return nil
	}
	return []fiber.Handler{am.GetMiddleware().Protect()}
}
