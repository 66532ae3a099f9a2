package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/models"
	"attendance-tasks/domain/ports"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/domain/services"
	"attendance-tasks/domain/taskpolicy"
	"attendance-tasks/pkg/apperror"
	"attendance-tasks/pkg/logger"

	"github.com/google/uuid"
)

const eventTimeout = 5 * time.Second

type TaskServiceImpl struct {
	taskRepo  repositories.TaskRepository
	directory services.GroupDirectory
	events    ports.TaskEventPort // nil disables events

	now      func() time.Time
	dispatch func(func())
}

func NewTaskService(taskRepo repositories.TaskRepository, directory services.GroupDirectory, events ports.TaskEventPort) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:  taskRepo,
		directory: directory,
		events:    events,
		now:       func() time.Time { return time.Now().UTC() },
		dispatch:  func(f func()) { go f() },
	}
}

// caller is who is acting, resolved from the directory on every request.
type caller struct {
	models.Identity
	led      *models.Group
	memberOf *uuid.UUID
}

func (c *caller) isLeader() bool {
	return c.IsLeader || c.led != nil
}

func (c *caller) leads(groupID uuid.UUID) bool {
	return c.led != nil && c.led.ID == groupID
}

func (c *caller) belongsTo(groupID uuid.UUID) bool {
	return c.memberOf != nil && *c.memberOf == groupID
}

// groups returns the groups the caller leads or sits in.
func (c *caller) groups() []uuid.UUID {
	var ids []uuid.UUID
	if c.led != nil {
		ids = append(ids, c.led.ID)
	}
	if c.memberOf != nil && !c.leads(*c.memberOf) {
		ids = append(ids, *c.memberOf)
	}
	return ids
}

func (s *TaskServiceImpl) resolveCaller(ctx context.Context, userID uuid.UUID) (*caller, error) {
	identity, err := s.directory.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			return nil, apperror.Forbidden("no profile found for the current user")
		}
		return nil, err
	}

	led, err := s.directory.GroupLed(ctx, userID)
	if err != nil {
		return nil, err
	}

	memberOf, err := s.directory.Membership(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &caller{Identity: *identity, led: led, memberOf: memberOf}, nil
}

// relationOf works out how c relates to task. Group roles are evaluated for
// the task's group only.
func (s *TaskServiceImpl) relationOf(c *caller, task *models.Task) taskpolicy.Relation {
	var rel taskpolicy.Relation
	if task.OwnerID == c.UserID {
		rel |= taskpolicy.Owner
	}
	if c.IsCoordinator() {
		rel |= taskpolicy.Coordinator
	}

	switch scope := task.Scope().(type) {
	case models.GroupScope:
		if c.leads(scope.GroupID) {
			rel |= taskpolicy.GroupLeader
		} else if c.belongsTo(scope.GroupID) {
			rel |= taskpolicy.GroupMember
		}
	case models.AssignedScope:
		if scope.AssigneeID == c.UserID {
			rel |= taskpolicy.Assignee
		}
		if scope.AssignerID == c.UserID {
			rel |= taskpolicy.Assigner
		}
	}
	return rel
}

func (s *TaskServiceImpl) loadTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("task %s not found", taskID)
		}
		return nil, fmt.Errorf("load task %s: %w", taskID, err)
	}
	return task, nil
}

// ========== Creation ==========

func (s *TaskServiceImpl) CreateTask(ctx context.Context, callerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	c, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperror.BadRequest("description is required")
	}

	scope, err := s.creationScope(ctx, c, req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation rejected", "caller_id", callerID, "variant", req.Variant, "error", err)
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ID:          uuid.New(),
		OwnerID:     c.UserID,
		Description: description,
		IsConfirmed: true,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.ApplyScope(scope)

	switch sc := scope.(type) {
	case models.GroupScope:
		task.IsConfirmed = sc.SuggesterID == nil
	case models.AssignedScope:
		task.DateAssigned = &now
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "caller_id", callerID, "error", err)
		return nil, fmt.Errorf("create task: %w", err)
	}

	created, err := s.loadTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Task created",
		"task_id", created.ID,
		"variant", created.Variant,
		"owner_id", created.OwnerID,
		"is_confirmed", created.IsConfirmed,
	)

	eventType := ports.TaskEventCreated
	switch {
	case created.Variant == models.TaskVariantGroup && !created.IsConfirmed:
		eventType = ports.TaskEventSuggested
	case created.Variant == models.TaskVariantAssigned:
		eventType = ports.TaskEventAssigned
	}
	s.emit(ctx, eventType, created, callerID)

	return created, nil
}

func (s *TaskServiceImpl) creationScope(ctx context.Context, c *caller, req *dto.CreateTaskRequest) (models.TaskScope, error) {
	switch req.Variant {
	case models.TaskVariantPersonal:
		return models.PersonalScope{}, nil

	case models.TaskVariantGlobal:
		if !c.IsCoordinator() {
			return nil, apperror.Forbidden("only coordinators can create global tasks")
		}
		return models.GlobalScope{}, nil

	case models.TaskVariantGroup:
		if req.GroupID == nil {
			return nil, apperror.BadRequest("groupId is required for group tasks")
		}
		groupID := *req.GroupID
		if c.leads(groupID) {
			return models.GroupScope{GroupID: groupID}, nil
		}
		if c.belongsTo(groupID) {
			suggester := c.UserID
			return models.GroupScope{GroupID: groupID, SuggesterID: &suggester}, nil
		}
		return nil, apperror.Forbidden("you are neither the leader nor a member of this group")

	case models.TaskVariantAssigned:
		if !c.IsCoordinator() && !c.isLeader() {
			return nil, apperror.Forbidden("only coordinators and group leaders can assign tasks")
		}
		if req.AssigneeID == nil {
			return nil, apperror.BadRequest("assigneeId is required for assigned tasks")
		}
		assigneeID := *req.AssigneeID

		var within *uuid.UUID
		if !c.IsCoordinator() && assigneeID != c.UserID {
			if c.led == nil {
				return nil, apperror.Forbidden("you can only assign tasks to yourself")
			}
			within = &c.led.ID
		}
		if err := s.checkAssignee(ctx, c, assigneeID, within); err != nil {
			return nil, err
		}
		return models.AssignedScope{AssigneeID: assigneeID, AssignerID: c.UserID}, nil
	}

	return nil, apperror.BadRequest("unknown task variant %q", req.Variant)
}

// checkAssignee validates an assignee picked by c. Assigning to oneself is
// always allowed. With groupID set the assignee must be on that roster.
func (s *TaskServiceImpl) checkAssignee(ctx context.Context, c *caller, assigneeID uuid.UUID, groupID *uuid.UUID) error {
	if assigneeID == c.UserID {
		return nil
	}

	if _, err := s.directory.RoleOf(ctx, assigneeID); err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			return apperror.BadRequest("assignee %s does not exist", assigneeID)
		}
		return err
	}

	if groupID == nil {
		return nil
	}
	membership, err := s.directory.Membership(ctx, assigneeID)
	if err != nil {
		return err
	}
	if membership == nil || *membership != *groupID {
		return apperror.Forbidden("assignee is not a member of your group")
	}
	return nil
}

// ========== Confirmation ==========

func (s *TaskServiceImpl) ConfirmTask(ctx context.Context, callerID, taskID uuid.UUID, req *dto.ConfirmTaskRequest) (*models.Task, error) {
	c, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Variant != models.TaskVariantGroup {
		return nil, apperror.NotFound("group task %s not found", taskID)
	}

	if !taskpolicy.CanConfirm(task.Variant, s.relationOf(c, task)) {
		logger.WarnContext(ctx, "Task confirmation denied", "task_id", taskID, "caller_id", callerID)
		return nil, apperror.Forbidden("only the group's leader can confirm its tasks")
	}
	if task.Completed {
		return nil, apperror.InvalidState("task is already completed")
	}

	now := s.now()
	updates := map[string]any{
		"is_confirmed":  true,
		"date_assigned": now,
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.TaskText != nil {
		text := strings.TrimSpace(*req.TaskText)
		if text == "" {
			return nil, apperror.BadRequest("taskText cannot be empty")
		}
		updates["description"] = text
	}

	migrated := false
	if req.AssigneeID != nil {
		scope := task.Scope().(models.GroupScope)
		if err := s.checkAssignee(ctx, c, *req.AssigneeID, &scope.GroupID); err != nil {
			return nil, err
		}
		assignment := models.AssignedScope{
			AssigneeID:  *req.AssigneeID,
			AssignerID:  c.UserID,
			SuggesterID: scope.SuggesterID,
		}
		for col, v := range models.ScopeColumns(assignment) {
			updates[col] = v
		}
		updates["pending_completion"] = false
		migrated = true
	}

	if err := s.applyIf(ctx, task, updates, "task changed while it was being confirmed"); err != nil {
		return nil, err
	}

	confirmed, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Task confirmed", "task_id", taskID, "caller_id", callerID, "migrated", migrated)

	eventType := ports.TaskEventConfirmed
	if migrated {
		eventType = ports.TaskEventAssigned
	}
	s.emit(ctx, eventType, confirmed, callerID)

	return confirmed, nil
}

// ========== Update ==========

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	c, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	change := taskpolicy.Change{
		Completed:   req.Completed,
		Description: req.Description,
		IsConfirmed: req.IsConfirmed,
	}
	if task.Variant != models.TaskVariantGroup {
		change.IsConfirmed = nil
	}
	if change.Description != nil {
		text := strings.TrimSpace(*change.Description)
		if text == "" {
			return nil, apperror.BadRequest("description cannot be empty")
		}
		change.Description = &text
	}

	// Completed tasks are terminal: a change allowed on an open task is
	// InvalidState, anything else stays Forbidden.
	subject := taskpolicy.SubjectOf(task)
	subject.Completed = false
	decision := taskpolicy.DecideUpdate(subject, s.relationOf(c, task), change)

	if decision.Allowed() && task.Completed {
		return nil, apperror.InvalidState("task is already completed")
	}
	if !decision.Allowed() {
		logger.WarnContext(ctx, "Task update denied", "task_id", taskID, "caller_id", callerID, "variant", task.Variant)
		return nil, apperror.Forbidden("you are not allowed to make this change")
	}

	switch {
	case decision.Effect == taskpolicy.RequestCompletion && task.PendingCompletion,
		decision.Effect == taskpolicy.WithdrawRequest && !task.PendingCompletion:
		return task, nil
	}

	updates := updatesFor(decision.Effect, change)
	if len(updates) == 0 {
		return task, nil
	}

	if err := s.applyIf(ctx, task, updates, "task changed while it was being updated"); err != nil {
		return nil, err
	}

	updated, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "caller_id", callerID, "rule", decision.Rule)

	eventType := ports.TaskEventUpdated
	if decision.Effect == taskpolicy.RequestCompletion {
		eventType = ports.TaskEventCompletionRequested
	}
	s.emit(ctx, eventType, updated, callerID)

	return updated, nil
}

// updatesFor turns an allowed change into the columns to write.
func updatesFor(effect taskpolicy.Effect, change taskpolicy.Change) map[string]any {
	updates := map[string]any{}

	switch effect {
	case taskpolicy.FreeEdit, taskpolicy.FreeEditClearPending:
		if change.Description != nil {
			updates["description"] = *change.Description
		}
		if change.IsConfirmed != nil {
			updates["is_confirmed"] = *change.IsConfirmed
		}
		if change.Completed != nil {
			updates["completed"] = *change.Completed
			if *change.Completed {
				updates["pending_completion"] = false
			}
		}
		if effect == taskpolicy.FreeEditClearPending {
			updates["pending_completion"] = false
		}
	case taskpolicy.RequestCompletion:
		updates["pending_completion"] = true
	case taskpolicy.WithdrawRequest:
		updates["pending_completion"] = false
	}

	return updates
}

// ========== Completion approval ==========

func (s *TaskServiceImpl) ConfirmCompletion(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	return s.resolveCompletion(ctx, callerID, taskID, true)
}

func (s *TaskServiceImpl) RejectCompletion(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	return s.resolveCompletion(ctx, callerID, taskID, false)
}

func (s *TaskServiceImpl) resolveCompletion(ctx context.Context, callerID, taskID uuid.UUID, approve bool) (*models.Task, error) {
	c, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !taskpolicy.CanResolveCompletion(task.Variant, s.relationOf(c, task)) {
		logger.WarnContext(ctx, "Completion approval denied", "task_id", taskID, "caller_id", callerID)
		return nil, apperror.Forbidden("you cannot approve or reject completion of this task")
	}
	if task.Completed {
		return nil, apperror.InvalidState("task is already completed")
	}
	if !task.PendingCompletion {
		return nil, apperror.InvalidState("task is not awaiting completion approval")
	}

	updates := map[string]any{"pending_completion": false}
	if approve {
		updates["completed"] = true
	}
	if err := s.applyIf(ctx, task, updates, "task is no longer awaiting completion approval"); err != nil {
		return nil, err
	}

	resolved, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	eventType := ports.TaskEventCompletionRejected
	if approve {
		eventType = ports.TaskEventCompletionApproved
	}
	logger.InfoContext(ctx, "Task completion resolved", "task_id", taskID, "caller_id", callerID, "approved", approve)
	s.emit(ctx, eventType, resolved, callerID)

	return resolved, nil
}

// ========== Deletion ==========

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	c, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}

	if !taskpolicy.CanDelete(task.Variant, s.relationOf(c, task)) {
		logger.WarnContext(ctx, "Task deletion denied", "task_id", taskID, "caller_id", callerID)
		return apperror.Forbidden("you are not allowed to delete this task")
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NotFound("task %s not found", taskID)
		}
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "caller_id", callerID)
	s.emit(ctx, ports.TaskEventDeleted, task, callerID)
	return nil
}

// ========== Helpers ==========

// applyIf writes updates only if the task is still in the state it was read
// in. A lost race is reported as NotFound when the task is gone or changed
// variant, and as InvalidState otherwise.
func (s *TaskServiceImpl) applyIf(ctx context.Context, task *models.Task, updates map[string]any, staleMsg string) error {
	ok, err := s.taskRepo.UpdateIf(ctx, task.ID, task.State(), updates)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", task.ID, "error", err)
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}
	if ok {
		return nil
	}

	current, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NotFound("task %s not found", task.ID)
		}
		return fmt.Errorf("reload task %s: %w", task.ID, err)
	}
	if current.Variant != task.Variant {
		return apperror.NotFound("task %s not found", task.ID)
	}

	logger.WarnContext(ctx, "Task changed concurrently", "task_id", task.ID)
	return apperror.InvalidState("%s", staleMsg)
}

func (s *TaskServiceImpl) emit(ctx context.Context, eventType ports.TaskEventType, task *models.Task, actorID uuid.UUID) {
	if s.events == nil {
		return
	}

	event := ports.NewTaskEvent(eventType, task, actorID, s.now())
	detached := context.WithoutCancel(ctx)

	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(detached, eventTimeout)
		defer cancel()

		if err := s.events.PublishTaskEvent(ctx, event); err != nil {
			logger.WarnContext(ctx, "Task event delivery failed",
				"event", event.Type,
				"task_id", event.TaskID,
				"error", err,
			)
		}
	})
}
