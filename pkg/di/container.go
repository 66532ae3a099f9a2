package di

import (
	"context"
	"fmt"

	"attendance-tasks/application/serviceimpl"
	"attendance-tasks/domain/ports"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/domain/services"
	"attendance-tasks/infrastructure/messaging"
	natspkg "attendance-tasks/infrastructure/nats"
	"attendance-tasks/infrastructure/postgres"
	redispkg "attendance-tasks/infrastructure/redis"
	"attendance-tasks/infrastructure/telegram"
	"attendance-tasks/interfaces/api/handlers"
	"attendance-tasks/pkg/config"
	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/scheduler"

	"gorm.io/gorm"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client   // optional, directory cache
	NATSClient     *natspkg.Client    // optional, task event stream
	NATSPublisher  *natspkg.Publisher
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository  repositories.UserRepository
	GroupRepository repositories.GroupRepository
	TaskRepository  repositories.TaskRepository

	// Directory lookups, cached in Redis when available
	Directory   services.GroupDirectory
	Invalidator services.DirectoryInvalidator

	// Notifications; nil when no sink is configured
	TaskEvents ports.TaskEventPort

	// Services
	TaskService     services.TaskService
	GroupService    services.GroupService
	UserService     services.UserService
	OverdueReminder *serviceimpl.OverdueReminderService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initDirectory()
	c.initNotifications()
	c.initServices()

	return c.initScheduler()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogSQL:   c.Config.Database.LogSQL,
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migrated")

	// Redis and NATS degrade gracefully: without them the directory is read
	// straight from the database and events only reach Telegram.
	if c.Config.Redis.Enabled {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	if c.Config.NATS.Enabled {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:    c.Config.NATS.URL,
			MaxAge: c.Config.NATS.MaxAge,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (event stream disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.NATSPublisher = natspkg.NewPublisher(natsClient)
			logger.Info("NATS client initialized", "url", c.Config.NATS.URL)
		}
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.GroupRepository = postgres.NewGroupRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initDirectory() {
	source := serviceimpl.NewGroupDirectory(c.UserRepository, c.GroupRepository)
	if c.RedisClient == nil {
		c.Directory = source
		return
	}

	cached := redispkg.NewGroupDirectory(source, c.RedisClient, c.Config.Redis.DirectoryTTL)
	c.Directory = cached
	c.Invalidator = cached
	logger.Info("Group directory cache enabled", "ttl", c.Config.Redis.DirectoryTTL)
}

func (c *Container) initNotifications() {
	var sinks []ports.TaskEventPort

	if c.NATSPublisher != nil {
		sinks = append(sinks, messaging.NewNATSTaskEvents(c.NATSPublisher))
	}

	if c.Config.Telegram.Enabled {
		sinks = append(sinks, telegram.NewNotifier(c.Config.Telegram))
		logger.Info("Telegram notifications enabled")
	}

	c.TaskEvents = messaging.NewFanout(sinks...)
	if c.TaskEvents == nil {
		logger.Warn("No task event sink configured (notifications disabled)")
	}
}

func (c *Container) initServices() {
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.Directory, c.TaskEvents)
	c.GroupService = serviceimpl.NewGroupService(c.GroupRepository, c.UserRepository, c.Invalidator)
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.GroupRepository)
	logger.Info("Services initialized")
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if c.Config.Reminder.Enabled {
		if err := scheduler.ValidateCronExpression(c.Config.Reminder.Cron); err != nil {
			return err
		}
		c.OverdueReminder = serviceimpl.NewOverdueReminderService(
			serviceimpl.OverdueReminderConfig{
				Cron:      c.Config.Reminder.Cron,
				BatchSize: c.Config.Reminder.BatchSize,
			},
			c.TaskRepository,
			c.TaskEvents,
			c.EventScheduler,
		)
		if err := c.OverdueReminder.RegisterReminderJob(); err != nil {
			return fmt.Errorf("failed to register overdue reminder: %w", err)
		}
	}

	c.EventScheduler.Start()
	logger.Info("Event scheduler started", "jobs", len(c.EventScheduler.ListJobs()))
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		TaskService:  c.TaskService,
		GroupService: c.GroupService,
		UserService:  c.UserService,
		AppName:      c.Config.App.Name,
		HealthChecks: c.healthChecks(),
	}
}

func (c *Container) healthChecks() []handlers.HealthCheck {
	checks := []handlers.HealthCheck{{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}

	if c.RedisClient != nil {
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: c.RedisClient.Ping})
	}
	if c.NATSClient != nil {
		checks = append(checks, handlers.HealthCheck{
			Name:  "nats",
			Check: func(ctx context.Context) error {
				if err := c.NATSClient.Ping(); err != nil {
					return err
				}
				_, err := c.NATSClient.Status(ctx)
				return err
			},
		})
	}
	return checks
}
