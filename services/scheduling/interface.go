package scheduling

import (
	"context"
	"time"

	"pitchside/models"
)

// ResolveOptions carries enrollment context for booking-window validation.
// The zero value skips all bounds checks (general availability queries).
type ResolveOptions struct {
	// EnrollmentDate and ProgramWeeks bound the bookable date range to
	// [EnrollmentDate, EnrollmentDate + ProgramWeeks*7d].
	EnrollmentDate time.Time
	ProgramWeeks   int
	// SessionNumber, when > 0, pins the date to the week slice the session
	// belongs to: week N covers day offsets [(N-1)*7, N*7) from enrollment.
	SessionNumber   int
	SessionsPerWeek int
}

// AvailabilityResolver derives open booking windows for a coach on a date
// from recurring weekly rules minus existing bookings. Read-only.
type AvailabilityResolver interface {
	ResolveAvailability(ctx context.Context, coachID, date string, durationMinutes int, opts *ResolveOptions) ([]models.SlotWindow, error)
	// GeneralAvailability returns the coach's raw weekly rules.
	GeneralAvailability(ctx context.Context, coachID string) ([]models.AvailabilityRule, error)
	// CoversWindow reports whether some weekly rule fully contains
	// [startTime, endTime) on the date's weekday. Used by the reschedule
	// path so coach-availability semantics cannot diverge from booking.
	CoversWindow(ctx context.Context, coachID, date, startTime, endTime string) (bool, error)
	// InvalidateCache drops cached availability for a coach/date after a
	// booking, reschedule, or cancellation touches it.
	InvalidateCache(ctx context.Context, coachID, date string)
	// InvalidateCoach drops all cached availability for a coach, used when
	// their weekly rules are replaced.
	InvalidateCoach(ctx context.Context, coachID string)
}
