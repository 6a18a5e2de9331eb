package booking

import (
	"context"
	"time"

	coachRepo "pitchside/database/repository/coach"
	enrollmentRepo "pitchside/database/repository/enrollment"
	groundRepo "pitchside/database/repository/ground"
	programRepo "pitchside/database/repository/program"
	sessionRepo "pitchside/database/repository/session"
	"pitchside/models"
	"pitchside/services/notification"
	"pitchside/services/scheduling"

	"go.uber.org/zap"
)

// CreateSessionRequest is the direct-booking input.
type CreateSessionRequest struct {
	EnrollmentID  string `json:"enrollmentId" binding:"required"`
	ScheduledDate string `json:"scheduledDate" binding:"required"` // "YYYY-MM-DD"
	ScheduledTime string `json:"scheduledTime" binding:"required"` // "HH:MM"
	Duration      int    `json:"duration"`
	Notes         string `json:"notes"`
}

// RescheduleRequest is the reschedule input.
type RescheduleRequest struct {
	SessionID     string `json:"sessionId" binding:"required"`
	NewDate       string `json:"newDate" binding:"required"`
	NewTime       string `json:"newTime" binding:"required"`
	NewGroundSlot int    `json:"newGroundSlot"`
	Duration      int    `json:"duration"`
}

// SessionService orchestrates booking, rescheduling, attendance and
// cancellation of coaching sessions.
type SessionService interface {
	CreateDirectSession(ctx context.Context, req CreateSessionRequest, requestingUserID string) (*models.Session, error)
	RescheduleSession(ctx context.Context, req RescheduleRequest, requestingUserID string) (*models.Session, error)
	MarkAttendance(ctx context.Context, sessionID, participantID string, attended bool, coachID string, admin bool) (*models.Session, error)
	CancelSession(ctx context.Context, sessionID, requestingUserID string) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	ListEnrollmentSessions(ctx context.Context, enrollmentID string) ([]models.Session, error)
	ListCoachSessions(ctx context.Context, coachID, date string) ([]models.Session, error)
	IsSlotAvailable(ctx context.Context, groundID string, slotNumber int, date, startTime, endTime, excludeSessionID string) (bool, error)
}

// Policy carries the scheduling policy knobs, injected from config so tests
// can exercise both sides of each rule deterministically.
type Policy struct {
	RescheduleLeadTime   time.Duration // strict lower bound; default 24h
	RescheduleWindowDays int           // default 7
	DefaultSlotMinutes   int           // default 120
	// AllowFutureAttendance is the development-mode escape hatch for marking
	// attendance on sessions that have not happened yet.
	AllowFutureAttendance bool
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Sessions    sessionRepo.SessionRepository
	Enrollments enrollmentRepo.EnrollmentRepository
	Programs    programRepo.ProgramRepository
	Coaches     coachRepo.CoachRepository
	Grounds     groundRepo.GroundRepository
	Resolver    scheduling.AvailabilityResolver
	Notifier    notification.NotificationService
	Logger      *zap.Logger
	Policy      Policy
}

func (svc *DefaultSessionService) leadTime() time.Duration {
	if svc.Policy.RescheduleLeadTime > 0 {
		return svc.Policy.RescheduleLeadTime
	}
	return 24 * time.Hour
}

func (svc *DefaultSessionService) windowDays() int {
	if svc.Policy.RescheduleWindowDays > 0 {
		return svc.Policy.RescheduleWindowDays
	}
	return 7
}

func (svc *DefaultSessionService) slotMinutes() int {
	if svc.Policy.DefaultSlotMinutes > 0 {
		return svc.Policy.DefaultSlotMinutes
	}
	return 120
}

func (svc *DefaultSessionService) logger() *zap.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}
	return zap.L()
}
