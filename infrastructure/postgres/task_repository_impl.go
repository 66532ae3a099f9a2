package postgres

import (
	"context"
	"errors"
	"time"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Group").
		Preload("Assignee").
		Preload("Assigner").
		Preload("Suggester")
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.withRelations(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) Find(ctx context.Context, f repositories.TaskFilter) ([]*models.Task, error) {
	query := r.withRelations(ctx).Model(&models.Task{})

	if f.Variant != "" {
		query = query.Where("variant = ?", f.Variant)
	}
	if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	}
	if len(f.GroupIDs) > 0 {
		query = query.Where("group_id IN ?", f.GroupIDs)
	}
	if len(f.AssigneeIDs) > 0 {
		query = query.Where("assignee_id IN ?", f.AssigneeIDs)
	}
	if f.AssignerID != nil {
		query = query.Where("assigner_id = ?", *f.AssignerID)
	}
	if f.AssigneeOrAssigner != nil {
		query = query.Where("(assignee_id = ? OR assigner_id = ?)", *f.AssigneeOrAssigner, *f.AssigneeOrAssigner)
	}
	if f.IsConfirmed != nil {
		query = query.Where("is_confirmed = ?", *f.IsConfirmed)
	}
	if f.PendingCompletion != nil {
		query = query.Where("pending_completion = ?", *f.PendingCompletion)
	}
	if f.Completed != nil {
		query = query.Where("completed = ?", *f.Completed)
	}

	var tasks []*models.Task
	err := query.Order("created_at DESC").Order("id DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) UpdateIf(ctx context.Context, id uuid.UUID, expected models.TaskState, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Where("variant = ?", expected.Variant).
		Where("is_confirmed = ?", expected.IsConfirmed).
		Where("pending_completion = ?", expected.PendingCompletion).
		Where("completed = ?", expected.Completed).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.withRelations(ctx).
		Where("completed = ?", false).
		Where("deadline IS NOT NULL AND deadline < ?", now).
		Order("deadline ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}
