package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/domain/services"

	"github.com/google/uuid"
)

// GroupDirectoryImpl answers directory queries straight from the database.
type GroupDirectoryImpl struct {
	userRepo  repositories.UserRepository
	groupRepo repositories.GroupRepository
}

func NewGroupDirectory(userRepo repositories.UserRepository, groupRepo repositories.GroupRepository) services.GroupDirectory {
	return &GroupDirectoryImpl{
		userRepo:  userRepo,
		groupRepo: groupRepo,
	}
}

func (d *GroupDirectoryImpl) RoleOf(ctx context.Context, userID uuid.UUID) (*models.Identity, error) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUnknownUser
		}
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return &models.Identity{
		UserID:   user.ID,
		Role:     user.Role,
		IsLeader: user.IsLeader,
	}, nil
}

func (d *GroupDirectoryImpl) GroupLed(ctx context.Context, userID uuid.UUID) (*models.Group, error) {
	group, err := d.groupRepo.GetByLeaderID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load group led by %s: %w", userID, err)
	}
	return group, nil
}

func (d *GroupDirectoryImpl) Membership(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	member, err := d.groupRepo.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load membership of %s: %w", userID, err)
	}
	groupID := member.GroupID
	return &groupID, nil
}

func (d *GroupDirectoryImpl) MembersOf(ctx context.Context, groupIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids, err := d.groupRepo.ListMemberIDs(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return ids, nil
}

func (d *GroupDirectoryImpl) GroupByID(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	group, err := d.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUnknownGroup
		}
		return nil, fmt.Errorf("load group %s: %w", groupID, err)
	}
	return group, nil
}
