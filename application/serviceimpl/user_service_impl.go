package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/apperror"

	"github.com/google/uuid"
)

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	groupRepo repositories.GroupRepository
}

func NewUserService(userRepo repositories.UserRepository, groupRepo repositories.GroupRepository) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		groupRepo: groupRepo,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*services.CallerProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("no profile found for user %s", userID)
		}
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	profile := &services.CallerProfile{User: user}

	led, err := s.groupRepo.GetByLeaderID(ctx, userID)
	switch {
	case err == nil:
		profile.LedGroup = led
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("load led group: %w", err)
	}

	membership, err := s.groupRepo.GetMembership(ctx, userID)
	switch {
	case err == nil:
		group, err := s.groupRepo.GetByID(ctx, membership.GroupID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("load member group: %w", err)
		}
		profile.MemberOf = group
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("load membership: %w", err)
	}

	return profile, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, callerID uuid.UUID, role models.UserRole) ([]*models.User, error) {
	if role != "" && !role.IsValid() {
		return nil, apperror.BadRequest("unknown role %q", role)
	}

	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.Forbidden("no profile found for the current user")
		}
		return nil, fmt.Errorf("load caller: %w", err)
	}
	if !caller.IsCoordinator() {
		return nil, apperror.Forbidden("only coordinators can list profiles")
	}

	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
