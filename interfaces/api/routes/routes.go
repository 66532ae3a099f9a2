package routes

import (
	"attendance-tasks/interfaces/api/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, jwtSecret string) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api/v1")

	SetupUserRoutes(api, h, jwtSecret)
	SetupGroupRoutes(api, h, jwtSecret)
	SetupTaskRoutes(api, h, jwtSecret)
}
