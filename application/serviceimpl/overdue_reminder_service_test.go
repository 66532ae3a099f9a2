package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/ports"
	"attendance-tasks/infrastructure/postgres"
	"attendance-tasks/pkg/scheduler"
	"attendance-tasks/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueReminderService_RunReminder(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := postgres.NewTaskRepository(db)
	events := &recordedEvents{}

	owner := testdb.User(t, db, "Max Member", models.RoleIntern)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	seed := func(deadline *time.Time, completed bool) *models.Task {
		task := &models.Task{
			ID:          uuid.New(),
			OwnerID:     owner.ID,
			Description: "submit timesheet",
			IsConfirmed: true,
			Completed:   completed,
			Deadline:    deadline,
		}
		task.ApplyScope(models.PersonalScope{})
		require.NoError(t, repo.Create(ctx, task))
		return task
	}
	late := seed(&yesterday, false)
	seed(&yesterday, true)
	seed(&tomorrow, false)
	seed(nil, false)

	svc := NewOverdueReminderService(OverdueReminderConfig{}, repo, events, scheduler.NewEventScheduler())
	svc.now = func() time.Time { return now }

	assert.Equal(t, 1, svc.RunReminder(ctx))
	require.Len(t, events.events, 1)
	event := events.events[0]
	assert.Equal(t, ports.TaskEventOverdue, event.Type)
	assert.Equal(t, late.ID, event.TaskID)
	assert.Equal(t, uuid.Nil, event.ActorID)

	events.err = errors.New("telegram down")
	assert.Equal(t, 0, svc.RunReminder(ctx))
}

func TestOverdueReminderService_RegisterReminderJob(t *testing.T) {
	db := testdb.New(t)
	s := scheduler.NewEventScheduler()
	svc := NewOverdueReminderService(OverdueReminderConfig{}, postgres.NewTaskRepository(db), nil, s)

	require.NoError(t, svc.RegisterReminderJob())
	job, ok := s.GetJob(overdueReminderJob)
	require.True(t, ok)
	assert.Equal(t, "0 8 * * *", job.CronExpr)

	assert.Equal(t, 0, svc.RunReminder(context.Background()), "no port, nothing to send")
}
