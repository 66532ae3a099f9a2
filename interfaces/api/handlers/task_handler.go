package handlers

import (
	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err, "Task creation")
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "variant", task.Variant, "user_id", user.ID)
	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var q dto.ListTasksQuery
	if err := c.QueryParser(&q); err != nil {
		logger.WarnContext(ctx, "Invalid query", "error", err)
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}
	if err := utils.ValidateStruct(&q); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	tasks, err := h.taskService.ListTasks(ctx, user.ID, services.TaskView(q.View))
	if err != nil {
		return respondError(c, err, "Task listing")
	}

	page, limit := dto.NormalizePage(q.Page, q.Limit)
	start, end := dto.PageBounds(len(tasks), page, limit)
	return utils.PaginatedSuccessResponse(c, dto.TasksToTaskResponses(tasks[start:end]), int64(len(tasks)), page, limit)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	taskID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	task, err := h.taskService.UpdateTask(ctx, user.ID, taskID, &req)
	if err != nil {
		return respondError(c, err, "Task update")
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", user.ID)
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ConfirmTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	taskID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.ConfirmTaskRequest
	if len(c.Body()) > 0 {
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
	}

	task, err := h.taskService.ConfirmTask(ctx, user.ID, taskID, &req)
	if err != nil {
		return respondError(c, err, "Task confirmation")
	}

	logger.InfoContext(ctx, "Task confirmed", "task_id", taskID, "variant", task.Variant, "user_id", user.ID)
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ConfirmCompletion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	taskID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.ConfirmCompletion(ctx, user.ID, taskID)
	if err != nil {
		return respondError(c, err, "Completion approval")
	}

	logger.InfoContext(ctx, "Completion approved", "task_id", taskID, "user_id", user.ID)
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) RejectCompletion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	taskID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.RejectCompletion(ctx, user.ID, taskID)
	if err != nil {
		return respondError(c, err, "Completion rejection")
	}

	logger.InfoContext(ctx, "Completion rejected", "task_id", taskID, "user_id", user.ID)
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	taskID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(ctx, user.ID, taskID); err != nil {
		return respondError(c, err, "Task deletion")
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", user.ID)
	return utils.NoContentResponse(c)
}
