package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskVariant string

const (
	TaskVariantPersonal TaskVariant = "personal"
	TaskVariantGlobal   TaskVariant = "global"
	TaskVariantGroup    TaskVariant = "group"
	TaskVariantAssigned TaskVariant = "assigned"
)

func (v TaskVariant) IsValid() bool {
	switch v {
	case TaskVariantPersonal, TaskVariantGlobal, TaskVariantGroup, TaskVariantAssigned:
		return true
	}
	return false
}

// Task is the flat storage row. Variant payload (group, assignee, assigner,
// suggester) is only written through ApplyScope or ScopeColumns.
type Task struct {
	ID                uuid.UUID   `gorm:"primaryKey;type:uuid"`
	OwnerID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	Owner             *User       `gorm:"foreignKey:OwnerID"`
	Variant           TaskVariant `gorm:"size:20;not null;index"`
	Description       string      `gorm:"type:text;not null"`
	GroupID           *uuid.UUID  `gorm:"type:uuid;index"`
	Group             *Group      `gorm:"foreignKey:GroupID"`
	AssigneeID        *uuid.UUID  `gorm:"type:uuid;index"`
	Assignee          *User       `gorm:"foreignKey:AssigneeID"`
	AssignerID        *uuid.UUID  `gorm:"type:uuid;index"`
	Assigner          *User       `gorm:"foreignKey:AssignerID"`
	SuggesterID       *uuid.UUID  `gorm:"type:uuid"`
	Suggester         *User       `gorm:"foreignKey:SuggesterID"`
	IsConfirmed       bool        `gorm:"not null"`
	PendingCompletion bool        `gorm:"not null"`
	Completed         bool        `gorm:"not null"`
	StartDate         *time.Time
	Deadline          *time.Time
	DateAssigned      *time.Time
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskState is the part of a task a conditional update compares against.
type TaskState struct {
	Variant           TaskVariant
	IsConfirmed       bool
	PendingCompletion bool
	Completed         bool
}

func (t *Task) State() TaskState {
	return TaskState{
		Variant:           t.Variant,
		IsConfirmed:       t.IsConfirmed,
		PendingCompletion: t.PendingCompletion,
		Completed:         t.Completed,
	}
}

// IsOverdue reports whether the deadline passed without completion.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}
