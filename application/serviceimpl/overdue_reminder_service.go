package serviceimpl

import (
	"context"
	"time"

	"attendance-tasks/domain/ports"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/scheduler"

	"github.com/google/uuid"
)

const overdueReminderJob = "task_overdue_reminder"

type OverdueReminderConfig struct {
	Cron      string // default "0 8 * * *"
	BatchSize int    // default 200
}

// OverdueReminderService emits one task.overdue event per open task whose
// deadline has passed.
type OverdueReminderService struct {
	config    OverdueReminderConfig
	taskRepo  repositories.TaskRepository
	events    ports.TaskEventPort
	scheduler scheduler.EventScheduler
	now       func() time.Time
}

func NewOverdueReminderService(
	config OverdueReminderConfig,
	taskRepo repositories.TaskRepository,
	events ports.TaskEventPort,
	eventScheduler scheduler.EventScheduler,
) *OverdueReminderService {
	if config.Cron == "" {
		config.Cron = "0 8 * * *"
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 200
	}

	return &OverdueReminderService{
		config:    config,
		taskRepo:  taskRepo,
		events:    events,
		scheduler: eventScheduler,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *OverdueReminderService) RegisterReminderJob() error {
	return s.scheduler.AddJob(overdueReminderJob, s.config.Cron, func() {
		s.RunReminder(context.Background())
	})
}

// RunReminder returns the number of reminders delivered.
func (s *OverdueReminderService) RunReminder(ctx context.Context) int {
	if s.events == nil {
		return 0
	}

	now := s.now()
	tasks, err := s.taskRepo.ListOverdue(ctx, now, s.config.BatchSize)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load overdue tasks", "error", err)
		return 0
	}

	sent := 0
	for _, task := range tasks {
		event := ports.NewTaskEvent(ports.TaskEventOverdue, task, uuid.Nil, now)
		if err := s.events.PublishTaskEvent(ctx, event); err != nil {
			logger.WarnContext(ctx, "Failed to send overdue reminder", "task_id", task.ID, "error", err)
			continue
		}
		sent++
	}

	if len(tasks) > 0 {
		logger.InfoContext(ctx, "Overdue reminders sent", "overdue", len(tasks), "sent", sent)
	}
	return sent
}
