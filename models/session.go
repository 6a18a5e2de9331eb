package models

import "time"

// Session statuses.
const (
	SessionScheduled   = "scheduled"
	SessionInProgress  = "in-progress"
	SessionCompleted   = "completed"
	SessionCancelled   = "cancelled"
	SessionRescheduled = "rescheduled"
)

// Session represents one scheduled coaching meeting on a ground slot.
type Session struct {
	ID              string        `bson:"id" json:"id"`
	ProgramID       string        `bson:"programId" json:"programId"`
	CoachID         string        `bson:"coachId" json:"coachId"`
	GroundID        string        `bson:"groundId" json:"groundId"`
	GroundSlot      int           `bson:"groundSlot" json:"groundSlot"` // 1..Ground.TotalSlots
	ScheduledDate   string        `bson:"scheduledDate" json:"scheduledDate"` // "YYYY-MM-DD"
	StartTime       string        `bson:"startTime" json:"startTime"`         // "HH:MM", 24h
	EndTime         string        `bson:"endTime" json:"endTime"`
	Duration        int           `bson:"duration" json:"duration"` // minutes
	Status          string        `bson:"status" json:"status"`
	Participants    []Participant `bson:"participants" json:"participants"`
	Rescheduled     bool          `bson:"rescheduled" json:"rescheduled"`
	RescheduledFrom *SessionSlot  `bson:"rescheduledFrom,omitempty" json:"rescheduledFrom,omitempty"`
	RescheduledAt   *time.Time    `bson:"rescheduledAt,omitempty" json:"rescheduledAt,omitempty"`
	BookingDeadline time.Time     `bson:"bookingDeadline" json:"bookingDeadline"` // 24h before start
	Notes           string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
}

// Participant is one attendee entry on a session.
type Participant struct {
	UserID             string     `bson:"userId" json:"userId"`
	EnrollmentID       string     `bson:"enrollmentId" json:"enrollmentId"`
	Attended           bool       `bson:"attended" json:"attended"`
	AttendanceMarkedAt *time.Time `bson:"attendanceMarkedAt,omitempty" json:"attendanceMarkedAt,omitempty"`
}

// SessionSlot is the date/time/slot triple a session occupied before a
// reschedule; captured at most once.
type SessionSlot struct {
	ScheduledDate string `bson:"scheduledDate" json:"scheduledDate"`
	StartTime     string `bson:"startTime" json:"startTime"`
	GroundSlot    int    `bson:"groundSlot" json:"groundSlot"`
}

// Active reports whether the session still occupies its ground slot.
func (s *Session) Active() bool {
	return s.Status != SessionCancelled
}

// FindParticipant returns the participant entry for the given user, or nil.
func (s *Session) FindParticipant(userID string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].UserID == userID {
			return &s.Participants[i]
		}
	}
	return nil
}
