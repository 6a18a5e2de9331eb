package booking

import (
	"context"
	"testing"
	"time"

	"pitchside/models"
	"pitchside/utils"

	"github.com/stretchr/testify/require"
)

func mustStartAbs(t *testing.T, s *models.Session) time.Time {
	t.Helper()
	abs, err := utils.CombineDateClock(s.ScheduledDate, s.StartTime)
	require.NoError(t, err)
	return abs
}

func requireServiceError(t *testing.T, err error, code string) *ServiceError {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*ServiceError)
	require.True(t, ok, "expected *ServiceError, got %T: %v", err, err)
	require.Equal(t, code, svcErr.Code)
	return svcErr
}

func TestCreateDirectSessionBooksSlot(t *testing.T) {
	env := newTestEnv(t, 4)
	ctx := context.Background()

	session, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
		Notes:         "bring pads",
	}, "user-1")
	require.NoError(t, err)

	require.Equal(t, "prog-1", session.ProgramID)
	require.Equal(t, "coach-1", session.CoachID)
	require.Equal(t, "ground-1", session.GroundID)
	require.Equal(t, 1, session.GroundSlot)
	require.Equal(t, "10:00", session.StartTime)
	require.Equal(t, "12:00", session.EndTime)
	require.Equal(t, 120, session.Duration)
	require.Equal(t, models.SessionScheduled, session.Status)
	require.False(t, session.Rescheduled)

	require.Len(t, session.Participants, 1)
	require.Equal(t, "user-1", session.Participants[0].UserID)
	require.Equal(t, "enr-1", session.Participants[0].EnrollmentID)
	require.False(t, session.Participants[0].Attended)

	// Booking deadline sits 24h before the session start.
	require.Equal(t, -24.0, session.BookingDeadline.Sub(mustStartAbs(t, session)).Hours())

	enrollment, err := env.enrollments.GetByID(ctx, "enr-1")
	require.NoError(t, err)
	require.Equal(t, 1, enrollment.Progress.TotalSessions)
	require.Equal(t, 0, enrollment.Progress.CompletedSessions)
	require.Equal(t, 0, enrollment.Progress.ProgressPercentage)

	require.Equal(t, 1, env.notifier.reminders)
}

func TestCreateDirectSessionMissingFields(t *testing.T) {
	env := newTestEnv(t, 4)

	_, err := env.svc.CreateDirectSession(context.Background(), CreateSessionRequest{
		EnrollmentID: "enr-1",
	}, "user-1")
	requireServiceError(t, err, CodeValidation)
}

func TestCreateDirectSessionUnknownEnrollment(t *testing.T) {
	env := newTestEnv(t, 4)

	_, err := env.svc.CreateDirectSession(context.Background(), CreateSessionRequest{
		EnrollmentID:  "enr-missing",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-1")
	requireServiceError(t, err, CodeNotFound)
}

func TestCreateDirectSessionRejectsOtherUsersEnrollment(t *testing.T) {
	env := newTestEnv(t, 4)

	_, err := env.svc.CreateDirectSession(context.Background(), CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "somebody-else")
	requireServiceError(t, err, CodeForbidden)
}

func TestCreateDirectSessionRejectsInactiveEnrollment(t *testing.T) {
	env := newTestEnv(t, 4)
	env.enrollments.enrollments["enr-1"].Status = models.EnrollmentCancelled

	_, err := env.svc.CreateDirectSession(context.Background(), CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-1")
	svcErr := requireServiceError(t, err, CodeValidation)
	require.Contains(t, svcErr.Message, "not active")
}

func TestCreateDirectSessionEnforcesProgramLimit(t *testing.T) {
	env := newTestEnv(t, 4)
	ctx := context.Background()

	// The program allows two sessions; both land in week one.
	for i, start := range []string{"08:00", "10:00"} {
		_, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
			EnrollmentID:  "enr-1",
			ScheduledDate: dateStr(2),
			ScheduledTime: start,
		}, "user-1")
		require.NoError(t, err, "booking %d", i+1)
	}

	_, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(3),
		ScheduledTime: "12:00",
	}, "user-1")
	svcErr := requireServiceError(t, err, CodeValidation)
	require.Contains(t, svcErr.Message, "2")
	require.Equal(t, 2, svcErr.Details["limit"])
}

func TestCreateDirectSessionRejectsUncoveredTime(t *testing.T) {
	env := newTestEnv(t, 4)

	// Coach rules run 06:00-22:00; a 21:00 start would spill past the end.
	_, err := env.svc.CreateDirectSession(context.Background(), CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "21:00",
	}, "user-1")
	svcErr := requireServiceError(t, err, CodeValidation)
	require.Contains(t, svcErr.Message, "not available")
}

func TestCreateDirectSessionRejectsDateOutsideWeekSlice(t *testing.T) {
	env := newTestEnv(t, 4)

	// Session 1 of a 2-per-week program belongs in week one; day 10 is week two.
	_, err := env.svc.CreateDirectSession(context.Background(), CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(10),
		ScheduledTime: "10:00",
	}, "user-1")
	svcErr := requireServiceError(t, err, CodeValidation)
	require.Equal(t, 1, svcErr.Details["expectedWeek"])
	require.Equal(t, 2, svcErr.Details["actualWeek"])
}

func TestCreateDirectSessionAssignsNextFreeGroundSlot(t *testing.T) {
	env := newTestEnv(t, 4)
	env.addSecondCoach()
	ctx := context.Background()

	first, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, first.GroundSlot)

	second, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-2",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-2")
	require.NoError(t, err)
	require.Equal(t, 2, second.GroundSlot)
}

func TestCreateDirectSessionConflictsWhenGroundFull(t *testing.T) {
	env := newTestEnv(t, 1)
	env.addSecondCoach()
	ctx := context.Background()

	_, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-1")
	require.NoError(t, err)

	// Different coach, same time, single-slot ground.
	_, err = env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-2",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-2")
	requireServiceError(t, err, CodeConflict)
}

func TestCreateDirectSessionRejectsDoubleBookedCoach(t *testing.T) {
	env := newTestEnv(t, 4)
	ctx := context.Background()

	_, err := env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-1",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-1")
	require.NoError(t, err)

	// Same coach, overlapping time: the resolver no longer offers the window.
	env.enrollments.enrollments["enr-3"] = &models.Enrollment{
		ID: "enr-3", UserID: "user-3", ProgramID: "prog-1",
		Status: models.EnrollmentActive, EnrollmentDate: env.enrollments.enrollments["enr-1"].EnrollmentDate,
	}
	_, err = env.svc.CreateDirectSession(ctx, CreateSessionRequest{
		EnrollmentID:  "enr-3",
		ScheduledDate: dateStr(2),
		ScheduledTime: "10:00",
	}, "user-3")
	svcErr := requireServiceError(t, err, CodeValidation)
	require.Contains(t, svcErr.Message, "not available")
}
