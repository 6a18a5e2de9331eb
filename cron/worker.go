package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pitchside/config"
	"pitchside/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async worker in background. It consumes
// the notification and reminder tasks enqueued by the booking service;
// actual delivery transport (email, push) hangs off these handlers.
func InitNotificationWorker(logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAttendanceNotify, handleNotification(logger, "attendance"))
	mux.HandleFunc(tasks.TypeRescheduleNotify, handleNotification(logger, "reschedule"))
	mux.HandleFunc(tasks.TypeSessionReminder, handleNotification(logger, "reminder"))

	// Start async worker with retry logic.
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleNotification(logger *zap.Logger, kind string) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.NotificationPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		logger.Info("dispatching notification",
			zap.String("kind", kind),
			zap.String("userId", payload.UserID),
			zap.String("sessionId", payload.SessionID),
			zap.String("date", payload.ScheduledDate),
			zap.String("start", payload.StartTime))
		return nil
	}
}
