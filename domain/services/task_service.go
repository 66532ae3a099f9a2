package services

import (
	"context"

	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

// TaskView names a read projection of tasks.
type TaskView string

const (
	TaskViewDefault  TaskView = ""
	TaskViewPersonal TaskView = "personal"
	TaskViewTeam     TaskView = "team"
	TaskViewManage   TaskView = "group"
	TaskViewGlobal   TaskView = "global"
)

func (v TaskView) IsValid() bool {
	switch v {
	case TaskViewDefault, TaskViewPersonal, TaskViewTeam, TaskViewManage, TaskViewGlobal:
		return true
	}
	return false
}

// TaskService is the task workflow. Errors carry an apperror kind
// (BadRequest, Forbidden, NotFound, InvalidState) or are infrastructure
// failures.
type TaskService interface {
	CreateTask(ctx context.Context, callerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, callerID uuid.UUID, view TaskView) ([]*models.Task, error)
	UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	ConfirmTask(ctx context.Context, callerID, taskID uuid.UUID, req *dto.ConfirmTaskRequest) (*models.Task, error)
	ConfirmCompletion(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error)
	RejectCompletion(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error)
	DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error
}
