package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is anything whose health can be checked with a round trip.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency reported by the health endpoint.
type HealthCheck struct {
	Name   string
	Target Pinger
}

// HealthHandler answers GET /health.
type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 3 * time.Second}
}

// Health reports "ok" with 200 when every check passes and "degraded" with 503 otherwise.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := "ok"
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Target.Ping(ctx); err != nil {
			status = "degraded"
			results[check.Name] = err.Error()
			continue
		}
		results[check.Name] = "ok"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"checks":    results,
		"timestamp": time.Now().UTC(),
	})
}
