package postgres

import (
	"context"
	"errors"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRepositoryImpl struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) repositories.GroupRepository {
	return &GroupRepositoryImpl{db: db}
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(group).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", group.LeaderID).
			Update("is_leader", true).Error
	})
}

func (r *GroupRepositoryImpl) first(ctx context.Context, query string, args ...any) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Members.User").
		Where(query, args...).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GroupRepositoryImpl) GetByLeaderID(ctx context.Context, leaderID uuid.UUID) (*models.Group, error) {
	return r.first(ctx, "leader_id = ?", leaderID)
}

func (r *GroupRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *GroupRepositoryImpl) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).Preload("Leader").Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepositoryImpl) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	member := &models.GroupMember{UserID: userID, GroupID: groupID}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

func (r *GroupRepositoryImpl) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *GroupRepositoryImpl) GetMembership(ctx context.Context, userID uuid.UUID) (*models.GroupMember, error) {
	var member models.GroupMember
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *GroupRepositoryImpl) ListMemberIDs(ctx context.Context, groupIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if len(groupIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id IN ?", groupIDs).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
