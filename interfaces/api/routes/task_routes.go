package routes

import (
	"attendance-tasks/interfaces/api/handlers"
	"attendance-tasks/interfaces/api/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Protected(jwtSecret))
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
	tasks.Post("/:id/confirm", h.TaskHandler.ConfirmTask)
	tasks.Post("/:id/completion/confirm", h.TaskHandler.ConfirmCompletion)
	tasks.Post("/:id/completion/reject", h.TaskHandler.RejectCompletion)
}
