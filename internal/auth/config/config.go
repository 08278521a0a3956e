package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the bearer token settings of the REST services.
type Config struct {
	// Enabled turns on the check that every call carries a token for the path's userId.
	Enabled bool `env:"AUTH_ENABLED" envDefault:"false"`

	JWTSecretKey   string        `env:"JWT_SECRET_KEY"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"asset-manager"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`

	// CookieName is read when the Authorization header carries no bearer token.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"am_auth_token"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings needed to issue and validate tokens.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required when AUTH_ENABLED is true")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT_ISSUER cannot be empty")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}
