package serviceimpl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/apperror"
	"attendance-tasks/pkg/logger"

	"github.com/google/uuid"
)

func (s *TaskServiceImpl) ListTasks(ctx context.Context, callerID uuid.UUID, view services.TaskView) ([]*models.Task, error) {
	if !view.IsValid() {
		return nil, apperror.BadRequest("unknown view %q", view)
	}

	c, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	q := &viewQuery{ctx: ctx, repo: s.taskRepo}
	switch view {
	case services.TaskViewPersonal:
		s.personalView(q, c)
	case services.TaskViewTeam:
		err = s.teamView(ctx, q, c)
	case services.TaskViewManage:
		err = s.manageView(ctx, q, c)
	case services.TaskViewGlobal:
		s.globalView(q)
	default:
		s.defaultView(q, c)
	}
	if err == nil {
		err = q.err
	}
	if err != nil {
		return nil, err
	}

	tasks := mergeTasks(q.lists...)
	logger.DebugContext(ctx, "Tasks listed", "caller_id", callerID, "view", view, "count", len(tasks))
	return tasks, nil
}

// viewQuery runs a series of filters and keeps the first error.
type viewQuery struct {
	ctx   context.Context
	repo  repositories.TaskRepository
	lists [][]*models.Task
	err   error
}

func (q *viewQuery) find(filter repositories.TaskFilter) {
	if q.err != nil {
		return
	}
	tasks, err := q.repo.Find(q.ctx, filter)
	if err != nil {
		q.err = fmt.Errorf("query tasks: %w", err)
		return
	}
	q.lists = append(q.lists, tasks)
}

func (s *TaskServiceImpl) personalView(q *viewQuery, c *caller) {
	q.find(repositories.TaskFilter{
		Variant: models.TaskVariantPersonal,
		OwnerID: ptr(c.UserID),
	})
}

func (s *TaskServiceImpl) teamView(ctx context.Context, q *viewQuery, c *caller) error {
	groups := c.groups()
	if len(groups) == 0 {
		return nil
	}

	q.find(repositories.TaskFilter{
		Variant:     models.TaskVariantGroup,
		GroupIDs:    groups,
		IsConfirmed: ptr(true),
	})

	people, err := s.teamPeople(ctx, c, groups)
	if err != nil {
		return err
	}
	if len(people) > 0 {
		q.find(repositories.TaskFilter{
			Variant:     models.TaskVariantAssigned,
			AssigneeIDs: people,
		})
	}
	return nil
}

// teamPeople returns the rosters of groups together with their leaders.
func (s *TaskServiceImpl) teamPeople(ctx context.Context, c *caller, groups []uuid.UUID) ([]uuid.UUID, error) {
	members, err := s.directory.MembersOf(ctx, groups)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(members)+2)
	people := make([]uuid.UUID, 0, len(members)+2)
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		people = append(people, id)
	}

	for _, id := range members {
		add(id)
	}
	if c.led != nil {
		add(c.UserID)
	}
	if c.memberOf != nil && !c.leads(*c.memberOf) {
		group, err := s.directory.GroupByID(ctx, *c.memberOf)
		switch {
		case errors.Is(err, services.ErrUnknownGroup):
		case err != nil:
			return nil, err
		default:
			add(group.LeaderID)
		}
	}
	return people, nil
}

func (s *TaskServiceImpl) manageView(ctx context.Context, q *viewQuery, c *caller) error {
	if c.led == nil {
		return apperror.Forbidden("only group leaders can open the group view")
	}
	led := []uuid.UUID{c.led.ID}

	// suggestions awaiting confirmation
	q.find(repositories.TaskFilter{
		Variant:     models.TaskVariantGroup,
		GroupIDs:    led,
		IsConfirmed: ptr(false),
	})

	// completion requests awaiting a decision
	q.find(repositories.TaskFilter{
		Variant:           models.TaskVariantGroup,
		GroupIDs:          led,
		PendingCompletion: ptr(true),
		Completed:         ptr(false),
	})
	members, err := s.directory.MembersOf(ctx, led)
	if err != nil {
		return err
	}
	if len(members) > 0 {
		q.find(repositories.TaskFilter{
			Variant:           models.TaskVariantAssigned,
			AssigneeIDs:       members,
			PendingCompletion: ptr(true),
			Completed:         ptr(false),
		})
	}

	q.find(repositories.TaskFilter{
		Variant:    models.TaskVariantAssigned,
		AssignerID: ptr(c.UserID),
	})
	return nil
}

func (s *TaskServiceImpl) globalView(q *viewQuery) {
	q.find(repositories.TaskFilter{
		Variant: models.TaskVariantGlobal,
	})
	q.find(repositories.TaskFilter{
		Variant:     models.TaskVariantGroup,
		IsConfirmed: ptr(true),
		Completed:   ptr(false),
	})
	q.find(repositories.TaskFilter{
		Variant:   models.TaskVariantAssigned,
		Completed: ptr(false),
	})
}

func (s *TaskServiceImpl) defaultView(q *viewQuery, c *caller) {
	s.personalView(q, c)
	q.find(repositories.TaskFilter{
		Variant: models.TaskVariantGlobal,
	})
	if groups := c.groups(); len(groups) > 0 {
		q.find(repositories.TaskFilter{
			Variant:  models.TaskVariantGroup,
			GroupIDs: groups,
		})
	}
	q.find(repositories.TaskFilter{
		Variant:            models.TaskVariantAssigned,
		AssigneeOrAssigner: ptr(c.UserID),
	})
}

// mergeTasks concatenates lists dropping repeated ids, newest first.
func mergeTasks(lists ...[]*models.Task) []*models.Task {
	seen := make(map[uuid.UUID]struct{})
	merged := make([]*models.Task, 0)

	for _, list := range lists {
		for _, task := range list {
			if _, dup := seen[task.ID]; dup {
				continue
			}
			seen[task.ID] = struct{}{}
			merged = append(merged, task)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
	return merged
}

func ptr[T any](v T) *T {
	return &v
}
