package repositories

import (
	"context"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

type GroupRepository interface {
	// Create inserts the group and flags its leader in the same transaction.
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	GetByLeaderID(ctx context.Context, leaderID uuid.UUID) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)

	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	GetMembership(ctx context.Context, userID uuid.UUID) (*models.GroupMember, error)
	ListMemberIDs(ctx context.Context, groupIDs []uuid.UUID) ([]uuid.UUID, error)
}
