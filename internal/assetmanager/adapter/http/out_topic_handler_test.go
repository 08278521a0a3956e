package http

import (
	"net/http/httptest"
	"testing"

	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type knownServers map[string]bool

func (k knownServers) Has(serverName string) bool { return k[serverName] }

func newOutTopicApp() *fiber.App {
	app := fiber.New()
	handler := NewOutTopicHandler(usecase.NewOutTopic(nil, nil, nil), knownServers{testServer: true}, logger.NewNopLogger())
	handler.RegisterRoutes(app)
	return app
}

func TestOutTopicHandler_RequiresUpgrade(t *testing.T) {
	app := newOutTopicApp()

	req := httptest.NewRequest(fiber.MethodGet, "/servers/"+testServer+"/open-metadata/access-services/asset-manager/topics/out-topic-events", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestOutTopicHandler_UnknownServer(t *testing.T) {
	app := newOutTopicApp()

	req := httptest.NewRequest(fiber.MethodGet, "/servers/cocoMDS9/open-metadata/access-services/asset-manager/topics/out-topic-events", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
