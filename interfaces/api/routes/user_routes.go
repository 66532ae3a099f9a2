package routes

import (
	"attendance-tasks/interfaces/api/handlers"
	"attendance-tasks/interfaces/api/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	api.Get("/me", middleware.Protected(jwtSecret), h.UserHandler.GetMe)

	users := api.Group("/users")
	users.Use(middleware.Protected(jwtSecret))
	users.Get("/", h.UserHandler.ListUsers)
}
