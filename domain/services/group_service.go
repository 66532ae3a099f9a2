package services

import (
	"context"

	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

// GroupService administers groups and rosters. Mutations are coordinator only.
type GroupService interface {
	CreateGroup(ctx context.Context, callerID uuid.UUID, req *dto.CreateGroupRequest) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error)
	AddMember(ctx context.Context, callerID, groupID uuid.UUID, req *dto.AddMemberRequest) (*models.Group, error)
	RemoveMember(ctx context.Context, callerID, groupID, userID uuid.UUID) (*models.Group, error)
}
