package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ClockLayout is the wire format for times of day (24h).
const ClockLayout = "15:04"

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight to an "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date in the local timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// CombineDateClock builds the absolute start instant of a session from its
// calendar date and "HH:MM" start time.
func CombineDateClock(date string, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// Overlaps reports whether the half-open ranges [aStart,aEnd) and
// [bStart,bEnd) intersect. Times are minutes from midnight.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
