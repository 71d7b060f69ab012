package domain

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Day truncates t to the calendar day it falls on in loc. The result is
// midnight UTC of that civil date, so days compare with Equal and step with
// AddDate regardless of the reference timezone.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD calendar day.
func ParseDay(s string) (time.Time, error) {
	return ParseDayIn(s, time.UTC)
}

// ParseDayIn parses a YYYY-MM-DD calendar day as midnight in loc, so that
// Day(t, loc) gives back the same calendar date.
func ParseDayIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Clock supplies "now" for the future-date check and for resolving today.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
