package ports

import (
	"context"
	"time"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Task Event Port - lifecycle notifications (NATS, Telegram, ...)
// ═══════════════════════════════════════════════════════════════════════════════

type TaskEventType string

const (
	TaskEventCreated             TaskEventType = "task.created"
	TaskEventSuggested           TaskEventType = "task.suggested"
	TaskEventConfirmed           TaskEventType = "task.confirmed"
	TaskEventAssigned            TaskEventType = "task.assigned"
	TaskEventCompletionRequested TaskEventType = "task.completion_requested"
	TaskEventCompletionApproved  TaskEventType = "task.completion_approved"
	TaskEventCompletionRejected  TaskEventType = "task.completion_rejected"
	TaskEventUpdated             TaskEventType = "task.updated"
	TaskEventDeleted             TaskEventType = "task.deleted"
	TaskEventOverdue             TaskEventType = "task.overdue"
)

// TaskEvent is a snapshot of a task at the moment something happened to it.
type TaskEvent struct {
	ID          uuid.UUID
	Type        TaskEventType
	TaskID      uuid.UUID
	Variant     models.TaskVariant
	Description string
	ActorID     uuid.UUID // uuid.Nil for scheduled events
	OwnerID     uuid.UUID
	GroupID     *uuid.UUID
	AssigneeID  *uuid.UUID
	AssignerID  *uuid.UUID
	SuggesterID *uuid.UUID
	Deadline    *time.Time
	OccurredAt  time.Time
}

// NewTaskEvent snapshots task for an event of type eventType.
func NewTaskEvent(eventType TaskEventType, task *models.Task, actorID uuid.UUID, at time.Time) *TaskEvent {
	return &TaskEvent{
		ID:          uuid.New(),
		Type:        eventType,
		TaskID:      task.ID,
		Variant:     task.Variant,
		Description: task.Description,
		ActorID:     actorID,
		OwnerID:     task.OwnerID,
		GroupID:     task.GroupID,
		AssigneeID:  task.AssigneeID,
		AssignerID:  task.AssignerID,
		SuggesterID: task.SuggesterID,
		Deadline:    task.Deadline,
		OccurredAt:  at,
	}
}

// TaskEventPort delivers task events. Delivery is best effort.
type TaskEventPort interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
