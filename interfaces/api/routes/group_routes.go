package routes

import (
	"attendance-tasks/interfaces/api/handlers"
	"attendance-tasks/interfaces/api/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupGroupRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	groups := api.Group("/groups")
	groups.Use(middleware.Protected(jwtSecret))
	groups.Get("/", h.GroupHandler.ListGroups)
	groups.Post("/", h.GroupHandler.CreateGroup)
	groups.Get("/:id", h.GroupHandler.GetGroup)
	groups.Post("/:id/members", h.GroupHandler.AddMember)
	groups.Delete("/:id/members/:userId", h.GroupHandler.RemoveMember)
}
