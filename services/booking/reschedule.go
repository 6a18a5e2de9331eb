package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionRepo "pitchside/database/repository/session"
	"pitchside/models"
	"pitchside/utils"

	"go.uber.org/zap"
)

// RescheduleSession moves a session to a new date/time/slot. A session may
// be rescheduled at most once; the move must start strictly more than the
// lead time from now and land within the reschedule window.
func (svc *DefaultSessionService) RescheduleSession(
	ctx context.Context,
	req RescheduleRequest,
	requestingUserID string,
) (*models.Session, error) {
	if req.SessionID == "" || req.NewDate == "" || req.NewTime == "" {
		return nil, NewValidationError("sessionId, newDate and newTime are required", nil)
	}

	session, err := svc.Sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, NewNotFoundError("session not found")
	}
	if session.FindParticipant(requestingUserID) == nil && session.CoachID != requestingUserID {
		return nil, NewForbiddenError("you can only reschedule your own sessions")
	}

	duration := req.Duration
	if duration <= 0 {
		duration = session.Duration
	}

	newStartAbs, err := utils.CombineDateClock(req.NewDate, req.NewTime)
	if err != nil {
		return nil, NewValidationError(err.Error(), nil)
	}
	now := time.Now()

	// Strictly more than the lead time, not >=.
	if newStartAbs.Sub(now) <= svc.leadTime() {
		return nil, NewValidationError(
			fmt.Sprintf("sessions must be rescheduled more than %d hours in advance", int(svc.leadTime().Hours())),
			nil,
		)
	}

	if session.Rescheduled {
		return nil, NewValidationError("session has already been rescheduled once", nil)
	}

	if daysUntil(now, newStartAbs) > svc.windowDays() {
		return nil, NewValidationError(
			fmt.Sprintf("new date must be within %d days from now", svc.windowDays()),
			map[string]any{"windowDays": svc.windowDays()},
		)
	}

	startMinutes, err := utils.ParseClock(req.NewTime)
	if err != nil {
		return nil, NewValidationError(err.Error(), nil)
	}
	newEndTime := utils.FormatClock(startMinutes + duration)

	covered, err := svc.Resolver.CoversWindow(ctx, session.CoachID, req.NewDate, req.NewTime, newEndTime)
	if err != nil {
		return nil, mapSchedulingError(err)
	}
	if !covered {
		return nil, NewValidationError("coach is not available at the requested time", nil)
	}

	newSlot := req.NewGroundSlot
	if newSlot <= 0 {
		newSlot = session.GroundSlot
	}
	free, err := svc.IsSlotAvailable(ctx, session.GroundID, newSlot, req.NewDate, req.NewTime, newEndTime, session.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, NewConflictError("the requested ground slot is already booked for that time")
	}

	prior := models.SessionSlot{
		ScheduledDate: session.ScheduledDate,
		StartTime:     session.StartTime,
		GroundSlot:    session.GroundSlot,
	}
	err = svc.Sessions.ApplyReschedule(ctx, session.ID, prior, req.NewDate, req.NewTime, newEndTime, newSlot, now)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrAlreadyRescheduled) {
			return nil, NewValidationError("session has already been rescheduled once", nil)
		}
		if errors.Is(err, sessionRepo.ErrSlotTaken) {
			return nil, NewConflictError("the requested ground slot was booked by another request")
		}
		return nil, err
	}

	svc.Resolver.InvalidateCache(ctx, session.CoachID, prior.ScheduledDate)
	svc.Resolver.InvalidateCache(ctx, session.CoachID, req.NewDate)

	updated, err := svc.Sessions.GetByID(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	for _, p := range updated.Participants {
		if err := svc.Notifier.NotifyRescheduled(ctx, p.UserID, updated); err != nil {
			svc.logger().Warn("reschedule notification failed",
				zap.String("sessionId", updated.ID), zap.String("userId", p.UserID), zap.Error(err))
		}
	}

	svc.logger().Info("session rescheduled",
		zap.String("sessionId", updated.ID),
		zap.String("from", prior.ScheduledDate+" "+prior.StartTime),
		zap.String("to", updated.ScheduledDate+" "+updated.StartTime))

	return updated, nil
}

// daysUntil counts whole calendar days between now's date and the target's
// date, so "within 7 days" compares dates, not instants.
func daysUntil(now, target time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())
	return int(targetDay.Sub(today).Hours() / 24)
}
