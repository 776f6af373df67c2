package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/scoutzos/pkg/config"
	"github.com/hugh/scoutzos/pkg/util"
)

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
	}
}

func NewClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer builds the worker. Failed task attempts are logged with their
// retry count.
func NewServer(cfg *config.RedisConfig, concurrency int, logger *slog.Logger) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}

	return asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logger.Error("task failed",
					"type", task.Type(),
					"retry", retried,
					"max_retry", maxRetry,
					"error", err,
				)
			}),
		},
	)
}

// NewScheduler builds a UTC scheduler that logs every periodic enqueue.
func NewScheduler(cfg *config.RedisConfig, logger *slog.Logger) *asynq.Scheduler {
	return asynq.NewScheduler(redisOpt(cfg), &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Error("failed to enqueue periodic task", "error", err)
				return
			}
			logger.Info("periodic task enqueued", "type", info.Type, "task_id", info.ID, "queue", info.Queue)
		},
	})
}

// Registrar is satisfied by *asynq.Scheduler.
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

var _ Registrar = (*asynq.Scheduler)(nil)

// RegisterPeriodic validates cronspec and registers task on it. It returns
// the entry id and the first run time after now.
func RegisterPeriodic(s Registrar, cronspec string, task *asynq.Task, now time.Time) (string, time.Time, error) {
	next, err := util.NextCronTime(cronspec, now)
	if err != nil {
		return "", time.Time{}, err
	}

	entryID, err := s.Register(cronspec, task)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("registering %s: %w", task.Type(), err)
	}
	return entryID, next, nil
}
