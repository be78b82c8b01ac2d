package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is implemented by every record store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency probed by /health.
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

// HealthHandler reports whether the record stores are reachable.
type HealthHandler struct {
	driver string
	checks []HealthCheck
}

// NewHealthHandler creates a HealthHandler for the given store driver.
// Checks run in the order given.
func NewHealthHandler(driver string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{driver: driver, checks: checks}
}

// Check handles GET /health. Every check is probed; the response is 503 when
// any of them fails, with the failing components marked "down".
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	components := make(fiber.Map, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		if err := check.Pinger.Ping(c.Context()); err != nil {
			log.Error().
				Err(err).
				Str("component", check.Name).
				Str("store", h.driver).
				Msg("health check failed: store unreachable")
			components[check.Name] = "down"
			healthy = false
			continue
		}
		components[check.Name] = "up"
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":     "unhealthy",
			"error":      "store unavailable",
			"store":      h.driver,
			"components": components,
		})
	}
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"store":      h.driver,
		"components": components,
	})
}
