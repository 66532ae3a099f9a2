package main

import (
	"context"
	"os"
	"time"

	"attendance-tasks/interfaces/api/handlers"
	"attendance-tasks/interfaces/api/middleware"
	"attendance-tasks/interfaces/api/routes"
	"attendance-tasks/pkg/di"
	"attendance-tasks/pkg/logger"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 15 * time.Second

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// request id first so every later log line carries it
	app.Use(middleware.RequestIDMiddleware())
	app.Use(recover.New())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.CORS.AllowOrigins))

	h := handlers.NewHandlers(container.GetHandlerServices())
	routes.SetupRoutes(app, h, cfg.JWT.Secret)

	logger.Info("Server starting",
		"port", cfg.App.Port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
	)

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// server first, then the connections its handlers were using
	wait := gfshutdown.GracefulShutdown(context.Background(), shutdownTimeout, map[string]gfshutdown.Operation{
		"api": func(ctx context.Context) error {
			logger.Info("Gracefully shutting down...")
			if err := app.ShutdownWithContext(ctx); err != nil {
				logger.Error("Error shutting down server", "error", err)
			}
			return container.Cleanup()
		},
	})

	exitCode := <-wait
	logger.Info("Shutdown complete", "exit_code", exitCode)
	os.Exit(exitCode)
}
