package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	amhttp "asset-manager/internal/assetmanager/adapter/http"
	"asset-manager/internal/assetmanager/config"
	"asset-manager/internal/assetmanager/domain/model"
	authconfig "asset-manager/internal/auth/config"
	"asset-manager/internal/di"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	userRoot   = "/servers/cocoMDS1/open-metadata/access-services/asset-manager/users/erinoverview"
)

func newTestContainer(t *testing.T, authCfg *authconfig.Config) *di.Container {
	t.Helper()
	c := di.NewContainer(&config.Config{
		StoreType:        config.StoreMemory,
		CORSAllowOrigins: "*",
		RateLimitMax:     100,
		RateLimitWindow:  time.Minute,
		Servers:          []config.ServerConfig{{Name: "cocoMDS1"}},
	}, authCfg, logger.NewNopLogger())
	require.NoError(t, c.Initialize(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func createGlossary(t *testing.T, app *fiber.App, token string) (int, amhttp.GUIDResponse) {
	t.Helper()
	body, err := json.Marshal(&amhttp.ReferenceableRequestBody{
		ElementProperties: model.Wrap(&model.GlossaryProperties{
			ReferenceableProperties: model.ReferenceableProperties{QualifiedName: "Glossary:Sales"},
		}),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, userRoot+"/glossaries", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out amhttp.GUIDResponse
	if resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestNewApp_ServesRequests(t *testing.T) {
	app := newApp(newTestContainer(t, nil), logger.NewNopLogger())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	status, created := createGlossary(t, app, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 200, created.RelatedHTTPCode)
	assert.NotEmpty(t, created.GUID)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/no/such/route", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNewApp_AuthEnabled(t *testing.T) {
	c := newTestContainer(t, &authconfig.Config{
		Enabled:        true,
		JWTSecretKey:   testSecret,
		JWTIssuer:      "asset-manager",
		AccessTokenTTL: time.Hour,
		CookieName:     "am_auth_token",
	})
	app := newApp(c, logger.NewNopLogger())

	status, _ := createGlossary(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	other, err := c.AuthModule.TokenService().GenerateToken(context.Background(), "garygeeke")
	require.NoError(t, err)
	status, _ = createGlossary(t, app, other)
	assert.Equal(t, fiber.StatusForbidden, status)

	token, err := c.AuthModule.TokenService().GenerateToken(context.Background(), "erinoverview")
	require.NoError(t, err)
	status, created := createGlossary(t, app, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, created.GUID)

	// Health stays open.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestServersCommand(t *testing.T) {
	t.Setenv("ASSET_MANAGER_SERVER_NAME", "cocoMDS3")

	out, err := runCommand(t, "servers")
	require.NoError(t, err)
	assert.Contains(t, out, "store: memory")
	assert.Contains(t, out, "name: cocoMDS3")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET_KEY", testSecret)

	out, err := runCommand(t, "token", "--user", "erinoverview")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}

func TestTokenCommand_AuthDisabled(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")

	_, err := runCommand(t, "token", "--user", "erinoverview")
	assert.Error(t, err)
}
