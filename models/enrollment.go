package models

import "time"

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentCancelled = "cancelled"
)

// Enrollment links a user to a coaching program and tracks progress.
type Enrollment struct {
	ID             string             `bson:"id" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	ProgramID      string             `bson:"programId" json:"programId"`
	Status         string             `bson:"status" json:"status"`
	EnrollmentDate time.Time          `bson:"enrollmentDate" json:"enrollmentDate"`
	Progress       EnrollmentProgress `bson:"progress" json:"progress"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnrollmentProgress is recomputed whenever a session is booked, cancelled,
// or attendance is marked. Counters are derived from the enrollment's
// sessions, never incremented in place.
type EnrollmentProgress struct {
	TotalSessions      int `bson:"totalSessions" json:"totalSessions"`
	CompletedSessions  int `bson:"completedSessions" json:"completedSessions"`
	ProgressPercentage int `bson:"progressPercentage" json:"progressPercentage"`
}
