package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the bearer tokens naming the calling user.
type TokenService interface {
	GenerateToken(ctx context.Context, userID string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userID"`
	jwt.RegisteredClaims
}
