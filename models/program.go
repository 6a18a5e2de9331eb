package models

import "time"

// CoachingProgram describes a bookable training program run by a coach.
type CoachingProgram struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	CoachID         string    `bson:"coachId" json:"coachId"`
	TotalSessions   int       `bson:"totalSessions" json:"totalSessions"`
	DurationWeeks   int       `bson:"durationWeeks" json:"durationWeeks"`
	SessionsPerWeek int       `bson:"sessionsPerWeek,omitempty" json:"sessionsPerWeek,omitempty"`
	MaxParticipants int       `bson:"maxParticipants" json:"maxParticipants"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// WeeklySessions returns the program's booking cadence, defaulting to two
// sessions per week for programs created before the field existed.
func (p *CoachingProgram) WeeklySessions() int {
	if p.SessionsPerWeek > 0 {
		return p.SessionsPerWeek
	}
	return 2
}
