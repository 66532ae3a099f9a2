package dto

import (
	"time"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Description string             `json:"description" validate:"required,min=1,max=2000"`
	Variant     models.TaskVariant `json:"variant" validate:"required,oneof=personal global group assigned"`
	GroupID     *uuid.UUID         `json:"groupId"`
	AssigneeID  *uuid.UUID         `json:"assigneeId"`
	StartDate   *time.Time         `json:"startDate"`
	Deadline    *time.Time         `json:"deadline"`
}

// UpdateTaskRequest is a partial update; omitted fields are left alone.
type UpdateTaskRequest struct {
	Completed   *bool   `json:"completed"`
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	IsConfirmed *bool   `json:"isConfirmed"`
}

type ConfirmTaskRequest struct {
	StartDate  *time.Time `json:"startDate"`
	Deadline   *time.Time `json:"deadline"`
	TaskText   *string    `json:"taskText" validate:"omitempty,min=1,max=2000"`
	AssigneeID *uuid.UUID `json:"assigneeId"`
}

type ListTasksQuery struct {
	View  string `query:"view" validate:"omitempty,oneof=personal team group global"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type TaskResponse struct {
	ID                uuid.UUID     `json:"id"`
	Variant           string        `json:"variant"`
	Description       string        `json:"description"`
	OwnerID           uuid.UUID     `json:"ownerId"`
	Owner             *UserSummary  `json:"owner,omitempty"`
	GroupID           *uuid.UUID    `json:"groupId"`
	Group             *GroupSummary `json:"group,omitempty"`
	AssigneeID        *uuid.UUID    `json:"assigneeId"`
	Assignee          *UserSummary  `json:"assignee,omitempty"`
	AssignerID        *uuid.UUID    `json:"assignerId"`
	Assigner          *UserSummary  `json:"assigner,omitempty"`
	SuggesterID       *uuid.UUID    `json:"suggesterId"`
	Suggester         *UserSummary  `json:"suggester,omitempty"`
	IsConfirmed       bool          `json:"isConfirmed"`
	PendingCompletion bool          `json:"pendingCompletion"`
	Completed         bool          `json:"completed"`
	StartDate         *time.Time    `json:"startDate"`
	Deadline          *time.Time    `json:"deadline"`
	DateAssigned      *time.Time    `json:"dateAssigned"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
