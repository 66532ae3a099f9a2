package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGocronScheduler_Jobs(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("task_overdue_reminder", "0 8 * * *", func() {}))
	require.NoError(t, s.AddJob("audit", "*/5 * * * *", func() {}))
	assert.Error(t, s.AddJob("audit", "*/5 * * * *", func() {}), "ids are unique")

	job, ok := s.GetJob("task_overdue_reminder")
	require.True(t, ok)
	assert.Equal(t, "0 8 * * *", job.CronExpr)
	assert.Nil(t, job.LastRun)

	jobs := s.ListJobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "audit", jobs[0].ID)

	require.NoError(t, s.RemoveJob("audit"))
	assert.Error(t, s.RemoveJob("audit"))
	_, ok = s.GetJob("audit")
	assert.False(t, ok)
}

func TestGocronScheduler_StartStop(t *testing.T) {
	s := NewEventScheduler()
	assert.False(t, s.IsRunning())

	s.Start()
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestValidateCronExpression(t *testing.T) {
	assert.NoError(t, ValidateCronExpression("0 8 * * *"))
	assert.Error(t, ValidateCronExpression("every morning"))
}
