package services

import (
	"context"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

// CallerProfile is the caller's profile with the group relations the task
// rules depend on.
type CallerProfile struct {
	User     *models.User
	LedGroup *models.Group
	MemberOf *models.Group
}

func (p *CallerProfile) IsCoordinator() bool {
	return p.User.IsCoordinator()
}

func (p *CallerProfile) IsLeader() bool {
	return p.User.IsLeader || p.LedGroup != nil
}

func (p *CallerProfile) CanCreateGlobal() bool {
	return p.IsCoordinator()
}

func (p *CallerProfile) CanAssign() bool {
	return p.IsCoordinator() || p.IsLeader()
}

func (p *CallerProfile) CanManageGroup() bool {
	return p.LedGroup != nil
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*CallerProfile, error)
	// ListUsers is coordinator only; an empty role lists everyone.
	ListUsers(ctx context.Context, callerID uuid.UUID, role models.UserRole) ([]*models.User, error)
}
