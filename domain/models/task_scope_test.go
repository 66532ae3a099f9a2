package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyScope_ClearsOtherVariants(t *testing.T) {
	groupID := uuid.New()
	suggester := uuid.New()
	assignee := uuid.New()

	task := &Task{}
	task.ApplyScope(GroupScope{GroupID: groupID, SuggesterID: &suggester})

	require.Equal(t, TaskVariantGroup, task.Variant)
	require.NotNil(t, task.GroupID)
	assert.Equal(t, groupID, *task.GroupID)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.AssignerID)

	task.ApplyScope(AssignedScope{AssigneeID: assignee, AssignerID: assignee, SuggesterID: task.Scope().(GroupScope).SuggesterID})

	assert.Equal(t, TaskVariantAssigned, task.Variant)
	assert.Nil(t, task.GroupID)
	require.NotNil(t, task.SuggesterID)
	assert.Equal(t, suggester, *task.SuggesterID)

	task.ApplyScope(PersonalScope{})
	assert.Equal(t, TaskVariantPersonal, task.Variant)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.AssignerID)
	assert.Nil(t, task.SuggesterID)
}

func TestScope_RoundTrip(t *testing.T) {
	assignee, assigner := uuid.New(), uuid.New()

	tests := []struct {
		name  string
		scope TaskScope
	}{
		{"personal", PersonalScope{}},
		{"global", GlobalScope{}},
		{"group", GroupScope{GroupID: uuid.New()}},
		{"assigned", AssignedScope{AssigneeID: assignee, AssignerID: assigner}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{}
			task.ApplyScope(tt.scope)
			assert.Equal(t, tt.scope, task.Scope())
		})
	}
}

func TestScopeColumns(t *testing.T) {
	groupID := uuid.New()

	cols := ScopeColumns(GroupScope{GroupID: groupID})
	assert.Equal(t, TaskVariantGroup, cols["variant"])
	assert.Equal(t, groupID, cols["group_id"])
	assert.Nil(t, cols["suggester_id"])
	assert.Nil(t, cols["assignee_id"])

	self := uuid.New()
	cols = ScopeColumns(AssignedScope{AssigneeID: self, AssignerID: self})
	assert.Nil(t, cols["group_id"])
	assert.Equal(t, self, cols["assignee_id"])
	assert.True(t, AssignedScope{AssigneeID: self, AssignerID: self}.IsSelfAssigned())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Task{Deadline: &past}).IsOverdue(now))
	assert.False(t, (&Task{Deadline: &future}).IsOverdue(now))
	assert.False(t, (&Task{Deadline: &past, Completed: true}).IsOverdue(now))
	assert.False(t, (&Task{}).IsOverdue(now))
}
