package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	appName string
	checks  []HealthCheck
}

func NewHealthHandler(appName string, checks []HealthCheck) *HealthHandler {
	return &HealthHandler{appName: appName, checks: checks}
}

// Health reports liveness and the state of each dependency. Any failing
// probe turns the response into a 503.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := fiber.Map{}
	for _, hc := range h.checks {
		if err := hc.Check(ctx); err != nil {
			status = "degraded"
			deps[hc.Name] = err.Error()
			continue
		}
		deps[hc.Name] = "ok"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"service":      h.appName,
		"dependencies": deps,
	})
}
