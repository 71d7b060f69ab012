package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidWeekday = errors.New("invalid weekday")

// Weekday is 1-indexed from Sunday (Sunday=1, Monday=2 ... Saturday=7).
// Every schedule comparison in the system goes through WeekdayOf.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

var weekdayShort = [...]string{"", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayOf maps a calendar day to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday()) + 1
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Short returns the three letter label shown on tracker cards.
func (d Weekday) Short() string {
	if !d.Valid() {
		return "?"
	}
	return weekdayShort[d]
}

// ParseWeekday accepts full or short names, case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for d := Sunday; d <= Saturday; d++ {
		if v == weekdayNames[d] || v == strings.ToLower(weekdayShort[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
	}
	return []byte(weekdayNames[d]), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	parsed, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Schedule is the set of weekdays a tracker is active on, kept sorted and unique.
type Schedule []Weekday

func NewSchedule(days ...Weekday) Schedule {
	seen := make(map[Weekday]bool, len(days))
	out := make(Schedule, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func EveryDay() Schedule {
	return NewSchedule(Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday)
}

func (s Schedule) Contains(d Weekday) bool {
	for _, day := range s {
		if day == d {
			return true
		}
	}
	return false
}

func (s Schedule) validate() error {
	for _, d := range s {
		if !d.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
		}
	}
	return nil
}
