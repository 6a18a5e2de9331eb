package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names consumed by the notification worker.
const (
	TypeAttendanceNotify = "notify:attendance"
	TypeRescheduleNotify = "notify:reschedule"
	TypeSessionReminder  = "reminder:session"
)

// NotificationPayload is the common payload for participant notifications.
type NotificationPayload struct {
	UserID        string `json:"userId"`
	SessionID     string `json:"sessionId"`
	ScheduledDate string `json:"scheduledDate"`
	StartTime     string `json:"startTime"`
	Attended      bool   `json:"attended,omitempty"`
	PriorDate     string `json:"priorDate,omitempty"`
	PriorTime     string `json:"priorTime,omitempty"`
}

// NewAttendanceNotifyTask builds the task sent after attendance is marked.
func NewAttendanceNotifyTask(payload NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAttendanceNotify, b), nil
}

// NewRescheduleNotifyTask builds the task sent after a session moves.
func NewRescheduleNotifyTask(payload NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRescheduleNotify, b), nil
}

// NewSessionReminderTask builds a reminder fired at the session's booking
// deadline (24h before start).
func NewSessionReminderTask(payload NotificationPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}
