package repositories

import (
	"context"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// List returns profiles ordered by full name; an empty role lists everyone.
	List(ctx context.Context, role models.UserRole) ([]*models.User, error)
}
