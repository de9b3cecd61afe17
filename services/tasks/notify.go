package tasks

import (
	"context"
	"encoding/json"
	"time"

	"haven/config"
	"haven/models"

	"github.com/hibiken/asynq"
)

const TypeBookingNotify = "booking:notify"

// NewBookingNotifyTask builds the outbox task carrying one booking event.
func NewBookingNotifyTask(payload models.NotifyPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// OutboxRedisOpt returns the Redis connection used for the notification outbox.
func OutboxRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOutboxDB,
	}
}

// Enqueuer hands booking events to the outbox queue. It satisfies the
// booking service's Notifier dependency.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer connects an enqueuer to the outbox Redis DB.
func NewEnqueuer() *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(OutboxRedisOpt())}
}

func (e *Enqueuer) EnqueueBookingEvent(ctx context.Context, payload models.NotifyPayload) error {
	task, opts, err := NewBookingNotifyTask(payload)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, opts...)
	return err
}

// Close releases the underlying queue connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
