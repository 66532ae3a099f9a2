package repositories

import (
	"context"
	"errors"
	"time"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("record not found")

// TaskFilter narrows Find. Zero fields and empty slices do not filter.
type TaskFilter struct {
	Variant            models.TaskVariant
	OwnerID            *uuid.UUID
	GroupIDs           []uuid.UUID
	AssigneeIDs        []uuid.UUID
	AssignerID         *uuid.UUID
	AssigneeOrAssigner *uuid.UUID
	IsConfirmed        *bool
	PendingCompletion  *bool
	Completed          *bool
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// Find returns matching tasks ordered by created_at desc, id desc.
	Find(ctx context.Context, filter TaskFilter) ([]*models.Task, error)
	// UpdateIf applies updates only while the row still matches expected.
	// It reports false when no row matched.
	UpdateIf(ctx context.Context, id uuid.UUID, expected models.TaskState, updates map[string]any) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListOverdue returns not-completed tasks whose deadline is before now.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*models.Task, error)
}
