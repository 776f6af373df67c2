package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/scoutzos/internal/database"
	"github.com/hugh/scoutzos/internal/storage"
	"github.com/hugh/scoutzos/internal/tasks"
	"github.com/hugh/scoutzos/pkg/config"
	"github.com/hugh/scoutzos/pkg/queue"
	"github.com/hugh/scoutzos/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting scoutzos worker", "concurrency", cfg.Worker.Concurrency)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Without a store the purge handlers skip their tasks
	store, err := storage.New(context.Background(), cfg.Storage, logger)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			logger.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		logger.Warn("object storage not configured, blob purges will be skipped")
	}

	srv := queue.NewServer(&cfg.Redis, cfg.Worker.Concurrency, logger)

	handler := tasks.NewHandler(db, logger, store)
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	var scheduler *asynq.Scheduler
	if cfg.Worker.SweepCron != "" {
		scheduler = queue.NewScheduler(&cfg.Redis, logger)

		task, err := tasks.NewBlobSweepTask(tasks.BlobSweepPayload{LookbackHours: cfg.Worker.SweepLookbackHours})
		if err != nil {
			logger.Error("failed to build sweep task", "error", err)
			os.Exit(1)
		}

		entryID, next, err := queue.RegisterPeriodic(scheduler, cfg.Worker.SweepCron, task, time.Now())
		if err != nil {
			logger.Error("failed to schedule blob sweep", "error", err)
			os.Exit(1)
		}
		logger.Info("blob sweep scheduled",
			"entry_id", entryID,
			"cron", cfg.Worker.SweepCron,
			"next_run", next,
		)

		if err := scheduler.Start(); err != nil {
			logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		if scheduler != nil {
			scheduler.Shutdown()
		}
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
		cancel()
	}

	<-ctx.Done()

	if closer, ok := store.(interface{ Close() error }); ok {
		closer.Close()
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}
