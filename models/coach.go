package models

import "time"

// Coach is a cricket coach bookable through recurring weekly availability.
type Coach struct {
	ID           string             `bson:"id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Availability []AvailabilityRule `bson:"availability" json:"availability"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// AvailabilityRule is a recurring weekly window during which a coach can be
// booked. Rules have no end date; they stand until replaced by a profile edit.
type AvailabilityRule struct {
	DayOfWeek string `bson:"dayOfWeek" json:"dayOfWeek"` // "Monday".."Sunday"
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM", 24h
	EndTime   string `bson:"endTime" json:"endTime"`
}

// RulesForDay returns the coach's availability rules matching a weekday name.
func (c *Coach) RulesForDay(day string) []AvailabilityRule {
	var matched []AvailabilityRule
	for _, rule := range c.Availability {
		if rule.DayOfWeek == day {
			matched = append(matched, rule)
		}
	}
	return matched
}
