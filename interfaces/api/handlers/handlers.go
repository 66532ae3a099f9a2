package handlers

import (
	"attendance-tasks/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	TaskService  services.TaskService
	GroupService services.GroupService
	UserService  services.UserService
	AppName      string
	HealthChecks []HealthCheck
}

// Handlers contains all HTTP handlers
type Handlers struct {
	TaskHandler   *TaskHandler
	GroupHandler  *GroupHandler
	UserHandler   *UserHandler
	HealthHandler *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TaskHandler:   NewTaskHandler(services.TaskService),
		GroupHandler:  NewGroupHandler(services.GroupService),
		UserHandler:   NewUserHandler(services.UserService),
		HealthHandler: NewHealthHandler(services.AppName, services.HealthChecks),
	}
}
