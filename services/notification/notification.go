package notification

import (
	"context"
	"fmt"

	"pitchside/models"
	"pitchside/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqNotificationService enqueues notification tasks on the shared redis
// queue; the worker in cron/ consumes them. Delivery beyond the queue
// (email, push) is an external collaborator.
type AsynqNotificationService struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// NewAsynqNotificationService constructs the production notification service.
func NewAsynqNotificationService(client *asynq.Client, logger *zap.Logger) (*AsynqNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	return &AsynqNotificationService{Client: client, Logger: logger}, nil
}

// NotifyAttendanceMarked enqueues an attendance notification for one participant.
func (s *AsynqNotificationService) NotifyAttendanceMarked(ctx context.Context, userID string, session *models.Session, attended bool) error {
	task, err := tasks.NewAttendanceNotifyTask(tasks.NotificationPayload{
		UserID:        userID,
		SessionID:     session.ID,
		ScheduledDate: session.ScheduledDate,
		StartTime:     session.StartTime,
		Attended:      attended,
	})
	if err != nil {
		return fmt.Errorf("failed to build attendance notification: %w", err)
	}
	return s.enqueue(ctx, task, nil)
}

// NotifyRescheduled enqueues a reschedule notification for one participant.
func (s *AsynqNotificationService) NotifyRescheduled(ctx context.Context, userID string, session *models.Session) error {
	payload := tasks.NotificationPayload{
		UserID:        userID,
		SessionID:     session.ID,
		ScheduledDate: session.ScheduledDate,
		StartTime:     session.StartTime,
	}
	if session.RescheduledFrom != nil {
		payload.PriorDate = session.RescheduledFrom.ScheduledDate
		payload.PriorTime = session.RescheduledFrom.StartTime
	}
	task, err := tasks.NewRescheduleNotifyTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build reschedule notification: %w", err)
	}
	return s.enqueue(ctx, task, nil)
}

// ScheduleSessionReminder enqueues a reminder fired at the booking deadline.
// One task is enqueued per participant.
func (s *AsynqNotificationService) ScheduleSessionReminder(ctx context.Context, session *models.Session) error {
	for _, p := range session.Participants {
		task, opts, err := tasks.NewSessionReminderTask(tasks.NotificationPayload{
			UserID:        p.UserID,
			SessionID:     session.ID,
			ScheduledDate: session.ScheduledDate,
			StartTime:     session.StartTime,
		}, session.BookingDeadline)
		if err != nil {
			return fmt.Errorf("failed to build session reminder: %w", err)
		}
		if err := s.enqueue(ctx, task, opts); err != nil {
			return err
		}
	}
	return nil
}

func (s *AsynqNotificationService) enqueue(ctx context.Context, task *asynq.Task, opts []asynq.Option) error {
	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}
	if s.Logger != nil {
		s.Logger.Debug("notification task enqueued",
			zap.String("type", task.Type()), zap.String("taskId", info.ID))
	}
	return nil
}
