package models

// SlotWindow is one open booking window for a coach on a given date.
type SlotWindow struct {
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"` // minutes
	Available bool   `json:"available"`
}
