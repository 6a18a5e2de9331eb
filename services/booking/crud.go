package booking

import (
	"context"
	"fmt"

	"pitchside/models"

	"go.uber.org/zap"
)

// GetSession retrieves one session.
func (svc *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := svc.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, NewNotFoundError("session not found")
	}
	return session, nil
}

// ListEnrollmentSessions returns all sessions booked against an enrollment.
func (svc *DefaultSessionService) ListEnrollmentSessions(ctx context.Context, enrollmentID string) ([]models.Session, error) {
	return svc.Sessions.ListForEnrollment(ctx, enrollmentID)
}

// ListCoachSessions returns a coach's non-cancelled sessions on a date.
func (svc *DefaultSessionService) ListCoachSessions(ctx context.Context, coachID, date string) ([]models.Session, error) {
	return svc.Sessions.ListActiveForCoach(ctx, coachID, date)
}

// CancelSession marks a session cancelled, freeing its ground slot, and
// recomputes progress for every affected enrollment.
func (svc *DefaultSessionService) CancelSession(ctx context.Context, sessionID, requestingUserID string) (*models.Session, error) {
	session, err := svc.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, NewNotFoundError("session not found")
	}
	if session.CoachID != requestingUserID && session.FindParticipant(requestingUserID) == nil {
		return nil, NewForbiddenError("you can only cancel your own sessions")
	}
	if session.Status == models.SessionCancelled {
		return nil, NewValidationError("session is already cancelled", nil)
	}

	if err := svc.Sessions.UpdateStatus(ctx, sessionID, models.SessionCancelled); err != nil {
		return nil, err
	}

	for _, p := range session.Participants {
		booked, err := svc.Sessions.CountActiveForEnrollment(ctx, p.EnrollmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to count booked sessions: %w", err)
		}
		progress, err := svc.enrollmentProgress(ctx, p.EnrollmentID, booked)
		if err != nil {
			return nil, err
		}
		if err := svc.Enrollments.UpdateProgress(ctx, p.EnrollmentID, progress); err != nil {
			return nil, err
		}
	}

	svc.Resolver.InvalidateCache(ctx, session.CoachID, session.ScheduledDate)

	svc.logger().Info("session cancelled",
		zap.String("sessionId", session.ID),
		zap.String("by", requestingUserID))

	session.Status = models.SessionCancelled
	return session, nil
}
