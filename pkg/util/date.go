package util

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-date layout used in persisted history.
const DayLayout = "2006-01-02"

// DayKey formats a time as its ISO-8601 calendar date.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses an ISO-8601 calendar date string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day '%s': %w", s, err)
	}
	return t, nil
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysAgo returns the calendar day n days before t.
func DaysAgo(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, -n)
}
