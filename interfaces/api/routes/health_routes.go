package routes

import (
	"attendance-tasks/interfaces/api/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)
}
