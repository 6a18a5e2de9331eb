package notification

import (
	"context"

	"pitchside/models"
)

// NotificationService dispatches participant-facing notifications. All
// methods are best-effort from the caller's perspective: failures are logged
// by the caller and never abort the scheduling operation that triggered them.
type NotificationService interface {
	NotifyAttendanceMarked(ctx context.Context, userID string, session *models.Session, attended bool) error
	NotifyRescheduled(ctx context.Context, userID string, session *models.Session) error
	// ScheduleSessionReminder enqueues a reminder fired at the session's
	// booking deadline.
	ScheduleSessionReminder(ctx context.Context, session *models.Session) error
}
