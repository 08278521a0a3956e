package utils

import (
	"context"
	"testing"

	"asset-manager/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCaller(t *testing.T) {
	ctx := WithCaller(context.Background(), "cocoMDS1", "erinoverview")

	userID, err := GetUserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "erinoverview", userID)

	serverName, err := GetServerNameFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cocoMDS1", serverName)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, err := GetUserIDFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUserIDNotFound)
}

func TestGetRequestIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextkeys.RequestIDKey, 42)
	_, err := GetRequestIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrRequestIDNotString)
}
