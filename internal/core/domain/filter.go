package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidFilter = errors.New("invalid status filter")

type StatusFilter string

const (
	FilterAll            StatusFilter = "all"
	FilterScheduledToday StatusFilter = "today"
	FilterCompleted      StatusFilter = "completed"
	FilterUncompleted    StatusFilter = "uncompleted"
)

// ParseStatusFilter maps an empty value to FilterAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterScheduledToday, FilterCompleted, FilterUncompleted:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

type Query struct {
	ReferenceDate time.Time
	SearchText    string
	Status        StatusFilter
}

type Section struct {
	Title    string     `json:"title"`
	Trackers []*Tracker `json:"trackers"`
}

// View is the filtered board. ReferenceDate is the day actually used, which
// differs from the query when the status filter pins it to today.
type View struct {
	ReferenceDate time.Time
	Status        StatusFilter
	Sections      []Section
}

func (v View) Empty() bool {
	return len(v.Sections) == 0
}

// Filter derives the visible sections for a query. It never mutates the
// catalog or the ledger and keeps category and tracker order as received.
// A zero ReferenceDate means today.
func Filter(catalog *Catalog, ledger *Ledger, q Query, today time.Time) View {
	status := q.Status
	if status == "" {
		status = FilterAll
	}

	refDate := q.ReferenceDate
	if refDate.IsZero() || status == FilterScheduledToday {
		refDate = today
	}
	weekday := WeekdayOf(refDate)

	view := View{
		ReferenceDate: refDate,
		Status:        status,
		Sections:      make([]Section, 0),
	}

	for _, cat := range catalog.AllCategories() {
		var visible []*Tracker
		for _, t := range cat.Trackers {
			if !t.Schedule.Contains(weekday) || !t.MatchesSearch(q.SearchText) {
				continue
			}
			switch status {
			case FilterCompleted:
				if !ledger.IsCompleted(t.ID, refDate) {
					continue
				}
			case FilterUncompleted:
				if ledger.IsCompleted(t.ID, refDate) {
					continue
				}
			}
			visible = append(visible, t)
		}

		if len(visible) == 0 {
			continue
		}
		view.Sections = append(view.Sections, Section{Title: cat.Title, Trackers: visible})
	}

	return view
}
