package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/apperror"
	"attendance-tasks/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type GroupServiceImpl struct {
	groupRepo   repositories.GroupRepository
	userRepo    repositories.UserRepository
	invalidator services.DirectoryInvalidator // optional
}

func NewGroupService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, invalidator services.DirectoryInvalidator) services.GroupService {
	return &GroupServiceImpl{
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		invalidator: invalidator,
	}
}

func (s *GroupServiceImpl) CreateGroup(ctx context.Context, callerID uuid.UUID, req *dto.CreateGroupRequest) (*models.Group, error) {
	if err := s.requireCoordinator(ctx, callerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.BadRequest("group name is required")
	}

	if _, err := s.findUser(ctx, req.LeaderID, "leader"); err != nil {
		return nil, err
	}

	switch _, err := s.groupRepo.GetByLeaderID(ctx, req.LeaderID); {
	case err == nil:
		return nil, apperror.InvalidState("user %s already leads a group", req.LeaderID)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("check leader: %w", err)
	}

	groupSlug := slug.Make(name)
	switch _, err := s.groupRepo.GetBySlug(ctx, groupSlug); {
	case err == nil:
		return nil, apperror.InvalidState("a group named %q already exists", name)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("check slug: %w", err)
	}

	group := &models.Group{
		ID:       uuid.New(),
		Name:     name,
		Slug:     groupSlug,
		LeaderID: req.LeaderID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		logger.ErrorContext(ctx, "Failed to create group", "name", name, "error", err)
		return nil, fmt.Errorf("create group: %w", err)
	}

	logger.InfoContext(ctx, "Group created", "group_id", group.ID, "slug", group.Slug, "leader_id", group.LeaderID)
	s.invalidate(ctx)

	return s.GetGroup(ctx, group.ID)
}

func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *GroupServiceImpl) GetGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("group %s not found", groupID)
		}
		return nil, fmt.Errorf("load group %s: %w", groupID, err)
	}
	return group, nil
}

func (s *GroupServiceImpl) AddMember(ctx context.Context, callerID, groupID uuid.UUID, req *dto.AddMemberRequest) (*models.Group, error) {
	if err := s.requireCoordinator(ctx, callerID); err != nil {
		return nil, err
	}

	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, req.UserID, "user"); err != nil {
		return nil, err
	}
	if group.LeaderID == req.UserID {
		return nil, apperror.BadRequest("the leader is not listed on their own roster")
	}

	switch _, err := s.groupRepo.GetMembership(ctx, req.UserID); {
	case err == nil:
		return nil, apperror.InvalidState("user %s is already on a roster", req.UserID)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("check membership: %w", err)
	}

	if err := s.groupRepo.AddMember(ctx, groupID, req.UserID); err != nil {
		logger.ErrorContext(ctx, "Failed to add member", "group_id", groupID, "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("add member: %w", err)
	}

	logger.InfoContext(ctx, "Member added", "group_id", groupID, "user_id", req.UserID)
	s.invalidate(ctx)

	return s.GetGroup(ctx, groupID)
}

func (s *GroupServiceImpl) RemoveMember(ctx context.Context, callerID, groupID, userID uuid.UUID) (*models.Group, error) {
	if err := s.requireCoordinator(ctx, callerID); err != nil {
		return nil, err
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("user %s is not on the roster of group %s", userID, groupID)
		}
		return nil, fmt.Errorf("remove member: %w", err)
	}

	logger.InfoContext(ctx, "Member removed", "group_id", groupID, "user_id", userID)
	s.invalidate(ctx)

	return s.GetGroup(ctx, groupID)
}

func (s *GroupServiceImpl) requireCoordinator(ctx context.Context, callerID uuid.UUID) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.Forbidden("no profile found for the current user")
		}
		return fmt.Errorf("load caller: %w", err)
	}
	if !caller.IsCoordinator() {
		return apperror.Forbidden("only coordinators can manage groups")
	}
	return nil
}

func (s *GroupServiceImpl) findUser(ctx context.Context, userID uuid.UUID, what string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.BadRequest("%s %s does not exist", what, userID)
		}
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	return user, nil
}

func (s *GroupServiceImpl) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate group directory", "error", err)
	}
}
