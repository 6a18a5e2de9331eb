package booking

import (
	"context"
	"fmt"
	"time"

	"pitchside/models"
	"pitchside/utils"

	"go.uber.org/zap"
)

// MarkAttendance records whether a participant attended a session and
// recomputes their enrollment progress. Attendance cannot be marked on
// future sessions unless the injected AllowFutureAttendance flag is set
// (development-mode escape hatch, not a production guarantee).
func (svc *DefaultSessionService) MarkAttendance(
	ctx context.Context,
	sessionID, participantID string,
	attended bool,
	coachID string,
	admin bool,
) (*models.Session, error) {
	session, err := svc.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, NewNotFoundError("session not found")
	}
	if !admin && session.CoachID != coachID {
		return nil, NewForbiddenError("only the session's coach can mark attendance")
	}

	participant := session.FindParticipant(participantID)
	if participant == nil {
		return nil, NewNotFoundError("participant not found on this session")
	}

	day, err := utils.ParseDate(session.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("session %s has malformed scheduledDate: %w", session.ID, err)
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.After(today) && !svc.Policy.AllowFutureAttendance {
		return nil, NewValidationError("cannot mark attendance for a session that has not happened yet", nil)
	}

	if err := svc.Sessions.SetParticipantAttendance(ctx, sessionID, participantID, attended, now); err != nil {
		return nil, err
	}

	// completedSessions is derived from attended entries, never incremented,
	// so marking the same participant twice cannot double-count.
	booked, err := svc.Sessions.CountActiveForEnrollment(ctx, participant.EnrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked sessions: %w", err)
	}
	progress, err := svc.enrollmentProgress(ctx, participant.EnrollmentID, booked)
	if err != nil {
		return nil, err
	}
	if err := svc.Enrollments.UpdateProgress(ctx, participant.EnrollmentID, progress); err != nil {
		return nil, err
	}

	updated, err := svc.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Best-effort, per-recipient: one participant's failure never aborts the
	// operation or the other notifications.
	for _, p := range updated.Participants {
		if err := svc.Notifier.NotifyAttendanceMarked(ctx, p.UserID, updated, attended); err != nil {
			svc.logger().Warn("attendance notification failed",
				zap.String("sessionId", updated.ID), zap.String("userId", p.UserID), zap.Error(err))
		}
	}

	svc.logger().Info("attendance marked",
		zap.String("sessionId", updated.ID),
		zap.String("participantId", participantID),
		zap.Bool("attended", attended))

	return updated, nil
}
