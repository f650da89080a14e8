package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-planner.com/task-planner/internal/cleanup"
	config "task-planner.com/task-planner/internal/configs"
	httpapi "task-planner.com/task-planner/internal/http"
	middleware "task-planner.com/task-planner/internal/http/middlewares"
	repository "task-planner.com/task-planner/internal/repositories"
	"task-planner.com/task-planner/internal/services"
)

type shutdowner interface {
	Shutdown(ctx context.Context)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  "Starts the task planner HTTP API and the compensation worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		db := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(db)

		cleanupDelay := time.Duration(cfg.CleanupDelaySeconds) * time.Second

		var scheduler cleanup.Scheduler
		var schedulerShutdown shutdowner
		if cfg.CleanupBackend == "redis" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()

			redisScheduler := cleanup.NewRedisScheduler(redisClient, cfg.CleanupQueueKey, taskRepo, cleanupDelay)
			scheduler = redisScheduler
			schedulerShutdown = redisScheduler
		} else {
			inprocScheduler := cleanup.NewInProcessScheduler(taskRepo, cleanupDelay)
			scheduler = inprocScheduler
			schedulerShutdown = inprocScheduler
		}

		taskService := services.NewTaskService(taskRepo, scheduler, services.LogEvents{})

		e := echo.New()

		handler := httpapi.NewHandler(taskService)
		httpapi.Register(e, handler, cfg.RateLimit, middleware.HeaderAuthenticator{Header: cfg.AuthHeader})

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		schedulerShutdown.Shutdown(ctx)

		log.Println("HTTP server and compensation worker shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
