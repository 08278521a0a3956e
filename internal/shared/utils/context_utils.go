package utils

import (
	"context"
	"errors"

	"asset-manager/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound      = errors.New("userID not found in context")
	ErrUserIDNotString     = errors.New("userID in context is not a string")
	ErrServerNameNotFound  = errors.New("serverName not found in context")
	ErrServerNameNotString = errors.New("serverName in context is not a string")
	ErrRequestIDNotFound   = errors.New("requestID not found in context")
	ErrRequestIDNotString  = errors.New("requestID in context is not a string")
)

// GetUserIDFromContext retrieves the calling user id from the context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.UserIDKey, ErrUserIDNotFound, ErrUserIDNotString)
}

// GetServerNameFromContext retrieves the server instance name from the context.
func GetServerNameFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.ServerNameKey, ErrServerNameNotFound, ErrServerNameNotString)
}

// GetRequestIDFromContext retrieves the request id from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// WithCaller returns a context carrying the server name and calling user.
func WithCaller(ctx context.Context, serverName, userID string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.ServerNameKey, serverName)
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

func stringValue(ctx context.Context, key interface{}, notFound, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", notFound
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}
