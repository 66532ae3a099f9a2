package postgres

import (
	"context"
	"testing"
	"time"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func newTask(owner uuid.UUID, scope models.TaskScope, createdAt time.Time) *models.Task {
	task := &models.Task{
		ID:          uuid.New(),
		OwnerID:     owner,
		Description: "task " + createdAt.Format(time.Kitchen),
		IsConfirmed: true,
		CreatedAt:   createdAt,
	}
	task.ApplyScope(scope)
	return task
}

func TestTaskRepository_CreateAndGetByID(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	leader := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)
	group := testdb.Group(t, db, "Front Desk", leader, member)

	task := newTask(member.ID, models.GroupScope{GroupID: group.ID, SuggesterID: &member.ID}, time.Now().UTC())
	task.IsConfirmed = false
	require.NoError(t, repo.Create(ctx, task))

	found, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskVariantGroup, found.Variant)
	require.NotNil(t, found.Owner)
	assert.Equal(t, "Max Member", found.Owner.FullName)
	require.NotNil(t, found.Group)
	assert.Equal(t, "Front Desk", found.Group.Name)
	require.NotNil(t, found.Suggester)
	assert.Equal(t, member.ID, found.Suggester.ID)
	assert.False(t, found.IsConfirmed)
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTaskRepository_Find(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	coord := testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	leader := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)
	group := testdb.Group(t, db, "Front Desk", leader, member)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	personal := newTask(member.ID, models.PersonalScope{}, base)
	global := newTask(coord.ID, models.GlobalScope{}, base.Add(time.Minute))
	grouped := newTask(leader.ID, models.GroupScope{GroupID: group.ID}, base.Add(2*time.Minute))
	assigned := newTask(leader.ID, models.AssignedScope{AssigneeID: member.ID, AssignerID: leader.ID}, base.Add(3*time.Minute))
	assigned.PendingCompletion = true
	for _, task := range []*models.Task{personal, global, grouped, assigned} {
		require.NoError(t, repo.Create(ctx, task))
	}

	tests := []struct {
		name   string
		filter repositories.TaskFilter
		want   []uuid.UUID
	}{
		{"all newest first", repositories.TaskFilter{}, []uuid.UUID{assigned.ID, grouped.ID, global.ID, personal.ID}},
		{"personal of owner", repositories.TaskFilter{Variant: models.TaskVariantPersonal, OwnerID: &member.ID}, []uuid.UUID{personal.ID}},
		{"group ids", repositories.TaskFilter{Variant: models.TaskVariantGroup, GroupIDs: []uuid.UUID{group.ID}}, []uuid.UUID{grouped.ID}},
		{"assignee ids", repositories.TaskFilter{AssigneeIDs: []uuid.UUID{member.ID}}, []uuid.UUID{assigned.ID}},
		{"assigner", repositories.TaskFilter{AssignerID: &leader.ID}, []uuid.UUID{assigned.ID}},
		{"assignee or assigner", repositories.TaskFilter{AssigneeOrAssigner: &member.ID}, []uuid.UUID{assigned.ID}},
		{"pending", repositories.TaskFilter{PendingCompletion: boolPtr(true), Completed: boolPtr(false)}, []uuid.UUID{assigned.ID}},
		{"unconfirmed", repositories.TaskFilter{IsConfirmed: boolPtr(false)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := repo.Find(ctx, tt.filter)
			require.NoError(t, err)

			var got []uuid.UUID
			for _, task := range tasks {
				got = append(got, task.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskRepository_UpdateIf(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	leader := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)

	task := newTask(leader.ID, models.AssignedScope{AssigneeID: member.ID, AssignerID: leader.ID}, time.Now().UTC())
	task.PendingCompletion = true
	require.NoError(t, repo.Create(ctx, task))

	expected := task.State()
	ok, err := repo.UpdateIf(ctx, task.ID, expected, map[string]any{"completed": true, "pending_completion": false})
	require.NoError(t, err)
	assert.True(t, ok)

	// the same expectation no longer holds
	ok, err = repo.UpdateIf(ctx, task.ID, expected, map[string]any{"pending_completion": false})
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, found.Completed)
	assert.False(t, found.PendingCompletion)
}

func TestTaskRepository_UpdateIf_ScopeColumns(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	leader := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)
	group := testdb.Group(t, db, "Front Desk", leader, member)

	task := newTask(member.ID, models.GroupScope{GroupID: group.ID, SuggesterID: &member.ID}, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, task))

	updates := models.ScopeColumns(models.AssignedScope{AssigneeID: member.ID, AssignerID: leader.ID, SuggesterID: &member.ID})
	ok, err := repo.UpdateIf(ctx, task.ID, task.State(), updates)
	require.NoError(t, err)
	require.True(t, ok)

	found, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskVariantAssigned, found.Variant)
	assert.Nil(t, found.GroupID)
	require.NotNil(t, found.SuggesterID)
	assert.Equal(t, member.ID, *found.SuggesterID)
	require.NotNil(t, found.Assigner)
	assert.Equal(t, leader.ID, found.Assigner.ID)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := testdb.User(t, db, "Olive Owner", models.RoleIntern)
	task := newTask(owner.ID, models.PersonalScope{}, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.Delete(ctx, task.ID))
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), repositories.ErrNotFound)
}

func TestTaskRepository_ListOverdue(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := testdb.User(t, db, "Olive Owner", models.RoleIntern)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	late := newTask(owner.ID, models.PersonalScope{}, now.Add(-48*time.Hour))
	late.Deadline = &yesterday
	done := newTask(owner.ID, models.PersonalScope{}, now.Add(-48*time.Hour))
	done.Deadline = &yesterday
	done.Completed = true
	upcoming := newTask(owner.ID, models.PersonalScope{}, now.Add(-48*time.Hour))
	upcoming.Deadline = &tomorrow
	undated := newTask(owner.ID, models.PersonalScope{}, now.Add(-48*time.Hour))

	for _, task := range []*models.Task{late, done, upcoming, undated} {
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.ListOverdue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, late.ID, tasks[0].ID)
}
