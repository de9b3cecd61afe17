package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"haven/models"
	"haven/services/notification"
	"haven/services/tasks"

	"github.com/hibiken/asynq"
)

// InitNotifyWorker runs the notification outbox worker in the background.
// Tasks are retried by the queue on failure; booking state is never touched
// from here.
func InitNotifyWorker(notifSvc *notification.Service) {
	srv := asynq.NewServer(
		tasks.OutboxRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotify, handleNotifyTask(notifSvc))

	go func() {
		log.Println("[NotifyWorker] starting outbox worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleNotifyTask(notifSvc *notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotifyWorker] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.Dispatch(ctx, p); err != nil {
			log.Printf("[NotifyWorker] failed to dispatch %s for booking %s: %v", p.Kind, p.BookingID, err)
			return err
		}
		return nil
	}
}
