package domain

import (
	"fmt"
	"time"
)

// DayLayout is the storage and display format for calendar days.
// All dates in the timeline are whole days; time-of-day is always midnight UTC.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return t, nil
}

// FormatDay renders a time as its calendar day.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// DayOf truncates a time to its midnight-UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a day by a signed number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return DayOf(t).AddDate(0, 0, days)
}

// DaysBetween returns the signed day count from a to b (positive when b is later).
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
