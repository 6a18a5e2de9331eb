package models

import "time"

// Ground is a physical training venue with independently bookable slots
// (practice lanes / nets), numbered 1..TotalSlots.
type Ground struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Location   string    `bson:"location,omitempty" json:"location,omitempty"`
	TotalSlots int       `bson:"totalSlots" json:"totalSlots"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
