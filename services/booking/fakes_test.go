package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sessionRepo "pitchside/database/repository/session"
	"pitchside/models"
	"pitchside/services/scheduling"
)

// In-memory repository fakes implementing the storage interfaces, including
// the unique (ground, slot, date, startTime) constraint the mongo layer
// enforces with a partial index.

type fakeSessionRepo struct {
	mu          sync.Mutex
	sessions    map[string]*models.Session
	enrollments *fakeEnrollmentRepo
}

func newFakeSessionRepo(enrollments *fakeEnrollmentRepo) *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session), enrollments: enrollments}
}

func (f *fakeSessionRepo) add(s *models.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *s
	f.sessions[s.ID] = &copied
}

func (f *fakeSessionRepo) GetByID(_ context.Context, sessionID string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) slotTaken(candidate *models.Session, excludeID string) bool {
	for _, s := range f.sessions {
		if s.ID == excludeID || s.Status == models.SessionCancelled {
			continue
		}
		if s.GroundID == candidate.GroundID &&
			s.GroundSlot == candidate.GroundSlot &&
			s.ScheduledDate == candidate.ScheduledDate &&
			s.StartTime == candidate.StartTime {
			return true
		}
	}
	return false
}

func (f *fakeSessionRepo) CreateWithProgress(_ context.Context, session *models.Session, enrollmentID string, progress models.EnrollmentProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotTaken(session, "") {
		return sessionRepo.ErrSlotTaken
	}
	copied := *session
	f.sessions[session.ID] = &copied
	return f.enrollments.setProgress(enrollmentID, progress)
}

func (f *fakeSessionRepo) ListActiveForCoach(_ context.Context, coachID, date string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.CoachID == coachID && s.ScheduledDate == date && s.Status != models.SessionCancelled {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListActiveForGround(_ context.Context, groundID, date string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		if s.GroundID == groundID && s.ScheduledDate == date && s.Status != models.SessionCancelled {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListForEnrollment(_ context.Context, enrollmentID string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, s := range f.sessions {
		for _, p := range s.Participants {
			if p.EnrollmentID == enrollmentID {
				out = append(out, *s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) CountActiveForEnrollment(_ context.Context, enrollmentID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, s := range f.sessions {
		if s.Status == models.SessionCancelled {
			continue
		}
		for _, p := range s.Participants {
			if p.EnrollmentID == enrollmentID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeSessionRepo) CountAttendedForEnrollment(_ context.Context, enrollmentID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, s := range f.sessions {
		if s.Status == models.SessionCancelled {
			continue
		}
		for _, p := range s.Participants {
			if p.EnrollmentID == enrollmentID && p.Attended {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeSessionRepo) ApplyReschedule(_ context.Context, sessionID string, prior models.SessionSlot, newDate, newStart, newEnd string, newSlot int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	if s.Rescheduled {
		return sessionRepo.ErrAlreadyRescheduled
	}
	candidate := &models.Session{GroundID: s.GroundID, GroundSlot: newSlot, ScheduledDate: newDate, StartTime: newStart}
	if f.slotTaken(candidate, sessionID) {
		return sessionRepo.ErrSlotTaken
	}
	s.ScheduledDate = newDate
	s.StartTime = newStart
	s.EndTime = newEnd
	s.GroundSlot = newSlot
	s.Status = models.SessionRescheduled
	s.Rescheduled = true
	s.RescheduledFrom = &prior
	s.RescheduledAt = &at
	return nil
}

func (f *fakeSessionRepo) SetParticipantAttendance(_ context.Context, sessionID, userID string, attended bool, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	for i := range s.Participants {
		if s.Participants[i].UserID == userID {
			s.Participants[i].Attended = attended
			s.Participants[i].AttendanceMarkedAt = &at
			return nil
		}
	}
	return fmt.Errorf("participant %s not found on session %s", userID, sessionID)
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, sessionID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	s.Status = status
	return nil
}

func (f *fakeSessionRepo) EnsureIndexes(context.Context) error { return nil }

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments map[string]*models.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[string]*models.Enrollment)}
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *e
	f.enrollments[e.ID] = &copied
	return nil
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, enrollmentID string) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enrollments[enrollmentID]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEnrollmentRepo) UpdateProgress(_ context.Context, enrollmentID string, progress models.EnrollmentProgress) error {
	return f.setProgress(enrollmentID, progress)
}

func (f *fakeEnrollmentRepo) setProgress(enrollmentID string, progress models.EnrollmentProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.enrollments[enrollmentID]
	if !ok {
		return fmt.Errorf("enrollment %s not found", enrollmentID)
	}
	e.Progress = progress
	return nil
}

type fakeProgramRepo struct {
	programs map[string]*models.CoachingProgram
}

func (f *fakeProgramRepo) Create(_ context.Context, p *models.CoachingProgram) error {
	f.programs[p.ID] = p
	return nil
}

func (f *fakeProgramRepo) GetByID(_ context.Context, programID string) (*models.CoachingProgram, error) {
	return f.programs[programID], nil
}

type fakeCoachRepo struct {
	coaches map[string]*models.Coach
}

func (f *fakeCoachRepo) Create(_ context.Context, c *models.Coach) error {
	f.coaches[c.ID] = c
	return nil
}

func (f *fakeCoachRepo) GetByID(_ context.Context, coachID string) (*models.Coach, error) {
	return f.coaches[coachID], nil
}

func (f *fakeCoachRepo) ReplaceAvailability(_ context.Context, coachID string, rules []models.AvailabilityRule) error {
	c, ok := f.coaches[coachID]
	if !ok {
		return fmt.Errorf("coach %s not found", coachID)
	}
	c.Availability = rules
	return nil
}

type fakeGroundRepo struct {
	ground *models.Ground
}

func (f *fakeGroundRepo) Create(_ context.Context, g *models.Ground) error {
	f.ground = g
	return nil
}

func (f *fakeGroundRepo) GetByID(_ context.Context, groundID string) (*models.Ground, error) {
	if f.ground != nil && f.ground.ID == groundID {
		return f.ground, nil
	}
	return nil, nil
}

func (f *fakeGroundRepo) GetDefault(_ context.Context) (*models.Ground, error) {
	return f.ground, nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	attendance  []string
	reschedules []string
	reminders   int
	failFor     map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]bool)}
}

func (f *fakeNotifier) NotifyAttendanceMarked(_ context.Context, userID string, _ *models.Session, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[userID] {
		return fmt.Errorf("delivery failed for %s", userID)
	}
	f.attendance = append(f.attendance, userID)
	return nil
}

func (f *fakeNotifier) NotifyRescheduled(_ context.Context, userID string, _ *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[userID] {
		return fmt.Errorf("delivery failed for %s", userID)
	}
	f.reschedules = append(f.reschedules, userID)
	return nil
}

func (f *fakeNotifier) ScheduleSessionReminder(context.Context, *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders++
	return nil
}

// testEnv wires a service over the fakes with one coach available every day
// from 06:00 to 22:00.
type testEnv struct {
	sessions    *fakeSessionRepo
	enrollments *fakeEnrollmentRepo
	programs    *fakeProgramRepo
	coaches     *fakeCoachRepo
	grounds     *fakeGroundRepo
	notifier    *fakeNotifier
	svc         *DefaultSessionService
}

func allWeekRules(start, end string) []models.AvailabilityRule {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	rules := make([]models.AvailabilityRule, 0, len(days))
	for _, d := range days {
		rules = append(rules, models.AvailabilityRule{DayOfWeek: d, StartTime: start, EndTime: end})
	}
	return rules
}

func newTestEnv(t *testing.T, groundSlots int) *testEnv {
	t.Helper()

	enrollments := newFakeEnrollmentRepo()
	env := &testEnv{
		sessions:    newFakeSessionRepo(enrollments),
		enrollments: enrollments,
		programs:    &fakeProgramRepo{programs: make(map[string]*models.CoachingProgram)},
		coaches:     &fakeCoachRepo{coaches: make(map[string]*models.Coach)},
		grounds:     &fakeGroundRepo{},
		notifier:    newFakeNotifier(),
	}

	env.coaches.coaches["coach-1"] = &models.Coach{
		ID: "coach-1", Name: "Arjun Patel", Availability: allWeekRules("06:00", "22:00"),
	}
	env.programs.programs["prog-1"] = &models.CoachingProgram{
		ID: "prog-1", Name: "Junior Batting", CoachID: "coach-1",
		TotalSessions: 2, DurationWeeks: 4, SessionsPerWeek: 2, MaxParticipants: 6,
	}
	env.enrollments.enrollments["enr-1"] = &models.Enrollment{
		ID: "enr-1", UserID: "user-1", ProgramID: "prog-1",
		Status: models.EnrollmentActive, EnrollmentDate: time.Now(),
	}
	env.grounds.ground = &models.Ground{ID: "ground-1", Name: "Main Ground", TotalSlots: groundSlots}

	resolver := &scheduling.DefaultAvailabilityResolver{
		Coaches:                env.coaches,
		Sessions:               env.sessions,
		DefaultDurationMinutes: 120,
	}
	env.svc = &DefaultSessionService{
		Sessions:    env.sessions,
		Enrollments: env.enrollments,
		Programs:    env.programs,
		Coaches:     env.coaches,
		Grounds:     env.grounds,
		Resolver:    resolver,
		Notifier:    env.notifier,
	}
	return env
}

// addSecondCoach registers a second coach/program/enrollment sharing the
// same ground, for cross-coach slot-conflict tests.
func (env *testEnv) addSecondCoach() {
	env.coaches.coaches["coach-2"] = &models.Coach{
		ID: "coach-2", Name: "Priya Sharma", Availability: allWeekRules("06:00", "22:00"),
	}
	env.programs.programs["prog-2"] = &models.CoachingProgram{
		ID: "prog-2", Name: "Pace Bowling", CoachID: "coach-2",
		TotalSessions: 4, DurationWeeks: 4, SessionsPerWeek: 2, MaxParticipants: 6,
	}
	env.enrollments.enrollments["enr-2"] = &models.Enrollment{
		ID: "enr-2", UserID: "user-2", ProgramID: "prog-2",
		Status: models.EnrollmentActive, EnrollmentDate: time.Now(),
	}
}

func dateStr(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}
