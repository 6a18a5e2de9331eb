package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	sessionRepo "pitchside/database/repository/session"
	"pitchside/models"
	"pitchside/services/scheduling"
	"pitchside/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateDirectSession books a session against an active enrollment.
// Preconditions are checked in order; the first failure wins and is surfaced
// with a code naming the rule that failed.
func (svc *DefaultSessionService) CreateDirectSession(
	ctx context.Context,
	req CreateSessionRequest,
	requestingUserID string,
) (*models.Session, error) {
	if req.EnrollmentID == "" || req.ScheduledDate == "" || req.ScheduledTime == "" {
		return nil, NewValidationError("enrollmentId, scheduledDate and scheduledTime are required", nil)
	}
	duration := req.Duration
	if duration <= 0 {
		duration = svc.slotMinutes()
	}

	enrollment, err := svc.Enrollments.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, NewNotFoundError("enrollment not found")
	}
	if enrollment.UserID != requestingUserID {
		return nil, NewForbiddenError("you can only book sessions for your own enrollment")
	}
	if enrollment.Status != models.EnrollmentActive {
		return nil, NewValidationError("enrollment is not active", nil)
	}

	program, err := svc.Programs.GetByID(ctx, enrollment.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, NewNotFoundError("program not found")
	}

	booked, err := svc.Sessions.CountActiveForEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked sessions: %w", err)
	}
	if booked >= program.TotalSessions {
		return nil, NewValidationError(
			fmt.Sprintf("session limit reached: this program allows %d sessions", program.TotalSessions),
			map[string]any{"limit": program.TotalSessions},
		)
	}

	coach, err := svc.Coaches.GetByID(ctx, program.CoachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, NewNotFoundError("coach not found")
	}

	sessionNumber := booked + 1

	// Validate the date against the program window and week slice, and get
	// the coach's open windows, in one resolver call.
	windows, err := svc.Resolver.ResolveAvailability(ctx, coach.ID, req.ScheduledDate, duration, &scheduling.ResolveOptions{
		EnrollmentDate:  enrollment.EnrollmentDate,
		ProgramWeeks:    program.DurationWeeks,
		SessionNumber:   sessionNumber,
		SessionsPerWeek: program.WeeklySessions(),
	})
	if err != nil {
		return nil, mapSchedulingError(err)
	}

	startMinutes, err := utils.ParseClock(req.ScheduledTime)
	if err != nil {
		return nil, NewValidationError(err.Error(), nil)
	}
	endTime := utils.FormatClock(startMinutes + duration)

	if !containsWindow(windows, req.ScheduledTime, endTime) {
		return nil, NewValidationError("coach is not available at the requested time", nil)
	}

	ground, err := svc.Grounds.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	slot, err := svc.pickGroundSlot(ctx, ground.ID, ground.TotalSlots, req.ScheduledDate, req.ScheduledTime, endTime)
	if err != nil {
		return nil, err
	}
	if slot == 0 {
		return nil, NewConflictError("all ground slots are booked for the requested time")
	}

	startAbs, err := utils.CombineDateClock(req.ScheduledDate, req.ScheduledTime)
	if err != nil {
		return nil, NewValidationError(err.Error(), nil)
	}
	now := time.Now()

	session := &models.Session{
		ID:            uuid.New().String(),
		ProgramID:     program.ID,
		CoachID:       coach.ID,
		GroundID:      ground.ID,
		GroundSlot:    slot,
		ScheduledDate: req.ScheduledDate,
		StartTime:     req.ScheduledTime,
		EndTime:       endTime,
		Duration:      duration,
		Status:        models.SessionScheduled,
		Participants: []models.Participant{
			{UserID: enrollment.UserID, EnrollmentID: enrollment.ID, Attended: false},
		},
		BookingDeadline: startAbs.Add(-24 * time.Hour),
		Notes:           req.Notes,
		CreatedAt:       now,
	}

	progress, err := svc.enrollmentProgress(ctx, enrollment.ID, sessionNumber)
	if err != nil {
		return nil, err
	}

	if err := svc.Sessions.CreateWithProgress(ctx, session, enrollment.ID, progress); err != nil {
		if errors.Is(err, sessionRepo.ErrSlotTaken) {
			return nil, NewConflictError("the selected slot was booked by another request, please pick a different time")
		}
		return nil, err
	}

	svc.Resolver.InvalidateCache(ctx, coach.ID, req.ScheduledDate)

	if err := svc.Notifier.ScheduleSessionReminder(ctx, session); err != nil {
		svc.logger().Warn("failed to schedule session reminder",
			zap.String("sessionId", session.ID), zap.Error(err))
	}

	svc.logger().Info("session booked",
		zap.String("sessionId", session.ID),
		zap.String("enrollmentId", enrollment.ID),
		zap.Int("sessionNumber", sessionNumber),
		zap.String("date", session.ScheduledDate),
		zap.String("start", session.StartTime))

	return session, nil
}

// enrollmentProgress recomputes an enrollment's progress snapshot.
// totalBooked is the post-operation booked count; completed is always
// re-derived from attended participant entries so re-marks stay idempotent.
func (svc *DefaultSessionService) enrollmentProgress(ctx context.Context, enrollmentID string, totalBooked int) (models.EnrollmentProgress, error) {
	completed, err := svc.Sessions.CountAttendedForEnrollment(ctx, enrollmentID)
	if err != nil {
		return models.EnrollmentProgress{}, fmt.Errorf("failed to count attended sessions: %w", err)
	}
	pct := 0
	if totalBooked > 0 {
		pct = int(math.Round(float64(completed) / float64(totalBooked) * 100))
	}
	return models.EnrollmentProgress{
		TotalSessions:      totalBooked,
		CompletedSessions:  completed,
		ProgressPercentage: pct,
	}, nil
}

func containsWindow(windows []models.SlotWindow, start, end string) bool {
	for _, w := range windows {
		if w.StartTime == start && w.EndTime == end {
			return true
		}
	}
	return false
}

// mapSchedulingError converts resolver errors into the orchestrator's error
// taxonomy so nothing leaks past the public operations untyped.
func mapSchedulingError(err error) error {
	var validation *scheduling.ValidationError
	if errors.As(err, &validation) {
		return NewValidationError(validation.Message, validation.Details)
	}
	if errors.Is(err, scheduling.ErrCoachNotFound) {
		return NewNotFoundError("coach not found")
	}
	return err
}
