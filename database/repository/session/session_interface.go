package sessionRepo

import (
	"context"
	"errors"
	"time"

	"pitchside/models"
)

// ErrSlotTaken is returned when an insert or reschedule loses the race on the
// (ground, slot, date, startTime) unique index. Callers surface it as a
// conflict, not a generic storage failure.
var ErrSlotTaken = errors.New("ground slot already booked for this time")

// ErrAlreadyRescheduled is returned when a reschedule update matches no
// document because the session's rescheduled flag is already set.
var ErrAlreadyRescheduled = errors.New("session has already been rescheduled")

// SessionRepository persists coaching sessions and the enrollment progress
// that is derived from them.
type SessionRepository interface {
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	// CreateWithProgress inserts the session and writes the enrollment's
	// recomputed progress as one transactional unit.
	CreateWithProgress(ctx context.Context, session *models.Session, enrollmentID string, progress models.EnrollmentProgress) error
	// ListActiveForCoach returns non-cancelled sessions for a coach on a date.
	ListActiveForCoach(ctx context.Context, coachID, date string) ([]models.Session, error)
	// ListActiveForGround returns non-cancelled sessions for a ground on a date.
	ListActiveForGround(ctx context.Context, groundID, date string) ([]models.Session, error)
	ListForEnrollment(ctx context.Context, enrollmentID string) ([]models.Session, error)
	// CountActiveForEnrollment counts non-cancelled sessions booked against an
	// enrollment; used for the program session cap and session numbering.
	CountActiveForEnrollment(ctx context.Context, enrollmentID string) (int, error)
	// CountAttendedForEnrollment counts participant entries with attended=true
	// across the enrollment's sessions.
	CountAttendedForEnrollment(ctx context.Context, enrollmentID string) (int, error)
	// ApplyReschedule moves a session to a new slot, snapshotting the prior
	// one. The update only matches documents with rescheduled=false; a second
	// attempt yields ErrAlreadyRescheduled.
	ApplyReschedule(ctx context.Context, sessionID string, prior models.SessionSlot, newDate, newStart, newEnd string, newSlot int, at time.Time) error
	SetParticipantAttendance(ctx context.Context, sessionID, userID string, attended bool, at time.Time) error
	UpdateStatus(ctx context.Context, sessionID, status string) error
	EnsureIndexes(ctx context.Context) error
}
