package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"attendance-tasks/pkg/logger"

	"github.com/go-co-op/gocron"
)

// EventScheduler runs named background jobs on cron expressions.
type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	RemoveJob(id string) error
	GetJob(id string) (*JobInfo, bool)
	ListJobs() []*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string
	CronExpr string
	LastRun  *time.Time
	NextRun  *time.Time
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*entry
	mu        sync.RWMutex
	running   bool
}

type entry struct {
	cronExpr string
	job      *gocron.Job
	lastRun  *time.Time
}

// NewEventScheduler returns a UTC scheduler that never overlaps runs of the
// same job.
func NewEventScheduler() EventScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &GocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*entry),
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Event scheduler started", "jobs", len(s.jobs))
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.scheduler.Stop()
	s.running = false
	logger.Info("Event scheduler stopped")
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job %s already exists", id)
	}

	e := &entry{cronExpr: cronExpr}
	job, err := s.scheduler.Cron(cronExpr).Tag(id).Do(func() {
		now := time.Now().UTC()
		s.mu.Lock()
		e.lastRun = &now
		s.mu.Unlock()

		logger.Debug("Running scheduled job", "job", id)
		task()
	})
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", id, err)
	}
	e.job = job
	s.jobs[id] = e

	logger.Info("Job scheduled", "job", id, "cron", cronExpr, "next_run", job.NextRun().Format(time.RFC3339))
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job %s not found", id)
	}
	s.scheduler.RemoveByReference(e.job)
	delete(s.jobs, id)
	return nil
}

func (s *GocronScheduler) GetJob(id string) (*JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	return e.info(id), true
}

// ListJobs returns a snapshot of every job sorted by id.
func (s *GocronScheduler) ListJobs() []*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*JobInfo, 0, len(s.jobs))
	for id, e := range s.jobs {
		jobs = append(jobs, e.info(id))
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs
}

func (e *entry) info(id string) *JobInfo {
	info := &JobInfo{ID: id, CronExpr: e.cronExpr}
	if e.lastRun != nil {
		lastRun := *e.lastRun
		info.LastRun = &lastRun
	}
	if e.job != nil {
		nextRun := e.job.NextRun()
		info.NextRun = &nextRun
	}
	return info
}

// ValidateCronExpression reports whether cronExpr can be scheduled.
func ValidateCronExpression(cronExpr string) error {
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Cron(cronExpr).Do(func() {}); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}
