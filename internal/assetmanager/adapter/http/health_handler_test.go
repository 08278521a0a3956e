package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		eventsErr  error
		wantCode   int
		wantStatus string
	}{
		{"all healthy", nil, nil, fiber.StatusOK, "ok"},
		{"event store down", nil, fmt.Errorf("dial tcp 127.0.0.1:6379: connection refused"), fiber.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockPinger{}
			store.On("Ping", mock.Anything).Return(tt.storeErr)
			events := &mockPinger{}
			events.On("Ping", mock.Anything).Return(tt.eventsErr)

			app := fiber.New()
			NewHealthHandler(
				HealthCheck{Name: "metadataStore", Target: store},
				HealthCheck{Name: "eventStore", Target: events},
			).RegisterRoutes(app)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "ok", body.Checks["metadataStore"])
			if tt.eventsErr != nil {
				assert.Contains(t, body.Checks["eventStore"], "connection refused")
			}
		})
	}
}
