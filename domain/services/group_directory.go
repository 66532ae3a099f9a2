package services

import (
	"context"
	"errors"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

var (
	ErrUnknownUser  = errors.New("unknown user")
	ErrUnknownGroup = errors.New("unknown group")
)

// GroupDirectory is the read-only view of groups the task engine relies on.
type GroupDirectory interface {
	// RoleOf returns ErrUnknownUser when the user has no profile.
	RoleOf(ctx context.Context, userID uuid.UUID) (*models.Identity, error)
	// GroupLed returns nil when the user leads no group.
	GroupLed(ctx context.Context, userID uuid.UUID) (*models.Group, error)
	// Membership returns the id of the group whose roster holds the user, or nil.
	Membership(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
	// MembersOf returns the rosters of the given groups. Leaders are not included.
	MembersOf(ctx context.Context, groupIDs []uuid.UUID) ([]uuid.UUID, error)
	// GroupByID returns ErrUnknownGroup when the group does not exist.
	GroupByID(ctx context.Context, groupID uuid.UUID) (*models.Group, error)
}

// DirectoryInvalidator drops cached directory entries after group changes.
type DirectoryInvalidator interface {
	Invalidate(ctx context.Context) error
}
