package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "asset-manager context key userID", UserIDKey.String())
	assert.Equal(t, "asset-manager context key serverName", ServerNameKey.String())
}

func TestContextKeys_DoNotCollideWithPlainStrings(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDKey, "garygeeke")
	assert.Nil(t, ctx.Value("userID"))
	assert.Equal(t, "garygeeke", ctx.Value(UserIDKey))
}
