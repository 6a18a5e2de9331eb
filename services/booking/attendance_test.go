package booking

import (
	"context"
	"testing"

	"pitchside/models"

	"github.com/stretchr/testify/require"
)

// seedPastSession plants a session that already took place, since direct
// booking only accepts dates inside the program window going forward.
func seedPastSession(env *testEnv, id string, participants ...models.Participant) *models.Session {
	session := &models.Session{
		ID:            id,
		ProgramID:     "prog-1",
		CoachID:       "coach-1",
		GroundID:      "ground-1",
		GroundSlot:    1,
		ScheduledDate: dateStr(-1),
		StartTime:     "10:00",
		EndTime:       "12:00",
		Duration:      120,
		Status:        models.SessionScheduled,
		Participants:  participants,
	}
	env.sessions.add(session)
	return session
}

func TestMarkAttendanceRecordsAndDerivesProgress(t *testing.T) {
	env := newTestEnv(t, 4)
	ctx := context.Background()
	seedPastSession(env, "sess-1", models.Participant{UserID: "user-1", EnrollmentID: "enr-1"})

	updated, err := env.svc.MarkAttendance(ctx, "sess-1", "user-1", true, "coach-1", false)
	require.NoError(t, err)
	require.True(t, updated.Participants[0].Attended)
	require.NotNil(t, updated.Participants[0].AttendanceMarkedAt)

	enrollment, err := env.enrollments.GetByID(ctx, "enr-1")
	require.NoError(t, err)
	require.Equal(t, 1, enrollment.Progress.TotalSessions)
	require.Equal(t, 1, enrollment.Progress.CompletedSessions)
	require.Equal(t, 100, enrollment.Progress.ProgressPercentage)

	require.Equal(t, []string{"user-1"}, env.notifier.attendance)
}

func TestMarkAttendanceTwiceDoesNotDoubleCount(t *testing.T) {
	env := newTestEnv(t, 4)
	ctx := context.Background()
	seedPastSession(env, "sess-1", models.Participant{UserID: "user-1", EnrollmentID: "enr-1"})

	for i := 0; i < 2; i++ {
		_, err := env.svc.MarkAttendance(ctx, "sess-1", "user-1", true, "coach-1", false)
		require.NoError(t, err)
	}

	enrollment, err := env.enrollments.GetByID(ctx, "enr-1")
	require.NoError(t, err)
	require.Equal(t, 1, enrollment.Progress.CompletedSessions)
	require.Equal(t, 100, enrollment.Progress.ProgressPercentage)
}

func TestMarkAttendanceUnmarkRestoresProgress(t *testing.T) {
	env := newTestEnv(t, 4)
	ctx := context.Background()
	seedPastSession(env, "sess-1", models.Participant{UserID: "user-1", EnrollmentID: "enr-1"})

	_, err := env.svc.MarkAttendance(ctx, "sess-1", "user-1", true, "coach-1", false)
	require.NoError(t, err)
	_, err = env.svc.MarkAttendance(ctx, "sess-1", "user-1", false, "coach-1", false)
	require.NoError(t, err)

	enrollment, err := env.enrollments.GetByID(ctx, "enr-1")
	require.NoError(t, err)
	require.Equal(t, 0, enrollment.Progress.CompletedSessions)
	require.Equal(t, 0, enrollment.Progress.ProgressPercentage)
}

func TestMarkAttendanceRejectsFutureSession(t *testing.T) {
	env := newTestEnv(t, 4)
	session := bookSession(t, env, "enr-1", "user-1", dateStr(2), "10:00")

	_, err := env.svc.MarkAttendance(context.Background(), session.ID, "user-1", true, "coach-1", false)
	svcErr := requireServiceError(t, err, CodeValidation)
	require.Contains(t, svcErr.Message, "not happened yet")
}

func TestMarkAttendanceFutureAllowedWithOverride(t *testing.T) {
	env := newTestEnv(t, 4)
	env.svc.Policy.AllowFutureAttendance = true
	session := bookSession(t, env, "enr-1", "user-1", dateStr(2), "10:00")

	updated, err := env.svc.MarkAttendance(context.Background(), session.ID, "user-1", true, "coach-1", false)
	require.NoError(t, err)
	require.True(t, updated.Participants[0].Attended)
}

func TestMarkAttendanceRejectsOtherCoach(t *testing.T) {
	env := newTestEnv(t, 4)
	seedPastSession(env, "sess-1", models.Participant{UserID: "user-1", EnrollmentID: "enr-1"})

	_, err := env.svc.MarkAttendance(context.Background(), "sess-1", "user-1", true, "coach-2", false)
	requireServiceError(t, err, CodeForbidden)
}

func TestMarkAttendanceAllowsAdmin(t *testing.T) {
	env := newTestEnv(t, 4)
	seedPastSession(env, "sess-1", models.Participant{UserID: "user-1", EnrollmentID: "enr-1"})

	updated, err := env.svc.MarkAttendance(context.Background(), "sess-1", "user-1", true, "", true)
	require.NoError(t, err)
	require.True(t, updated.Participants[0].Attended)
}

func TestMarkAttendanceUnknownParticipant(t *testing.T) {
	env := newTestEnv(t, 4)
	seedPastSession(env, "sess-1", models.Participant{UserID: "user-1", EnrollmentID: "enr-1"})

	_, err := env.svc.MarkAttendance(context.Background(), "sess-1", "user-99", true, "coach-1", false)
	requireServiceError(t, err, CodeNotFound)
}

func TestMarkAttendanceNotificationFailureDoesNotAbort(t *testing.T) {
	env := newTestEnv(t, 4)
	seedPastSession(env, "sess-1",
		models.Participant{UserID: "user-1", EnrollmentID: "enr-1"},
		models.Participant{UserID: "user-2", EnrollmentID: "enr-1"},
	)
	env.notifier.failFor["user-2"] = true

	updated, err := env.svc.MarkAttendance(context.Background(), "sess-1", "user-1", true, "coach-1", false)
	require.NoError(t, err)
	require.True(t, updated.Participants[0].Attended)
	require.Equal(t, []string{"user-1"}, env.notifier.attendance)
}
