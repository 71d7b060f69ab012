package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrInvalidRecord = errors.New("invalid completion record")

// CompletionRecord marks a tracker as done on one calendar day.
type CompletionRecord struct {
	TrackerID string    `json:"tracker_id" db:"tracker_id"`
	Date      time.Time `json:"date" db:"completion_date"`
}

func NewCompletionRecord(trackerID string, day time.Time) (CompletionRecord, error) {
	if strings.TrimSpace(trackerID) == "" {
		return CompletionRecord{}, errors.Join(ErrInvalidRecord, errors.New("tracker_id is required"))
	}
	if day.IsZero() {
		return CompletionRecord{}, errors.Join(ErrInvalidRecord, errors.New("date is required"))
	}
	return CompletionRecord{TrackerID: trackerID, Date: civilDay(day)}, nil
}

// civilDay keeps the calendar date of t as read in its own location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type ToggleResult int

const (
	ToggleAdded ToggleResult = iota + 1
	ToggleRemoved
)

func (r ToggleResult) String() string {
	switch r {
	case ToggleAdded:
		return "added"
	case ToggleRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

func (r ToggleResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type recordKey struct {
	trackerID string
	day       string
}

func keyOf(trackerID string, day time.Time) recordKey {
	return recordKey{trackerID: trackerID, day: civilDay(day).Format(DayLayout)}
}

// Ledger is the in-memory set of completion records. At most one record
// exists per (tracker, day). Days are compared by calendar date; callers
// truncate instants with Day in the reference timezone first.
type Ledger struct {
	records map[recordKey]CompletionRecord
	counts  map[string]int
}

func NewLedger(records []CompletionRecord) *Ledger {
	l := &Ledger{
		records: make(map[recordKey]CompletionRecord, len(records)),
		counts:  make(map[string]int),
	}
	for _, r := range records {
		l.add(r.TrackerID, r.Date)
	}
	return l
}

func (l *Ledger) add(trackerID string, day time.Time) {
	k := keyOf(trackerID, day)
	if _, ok := l.records[k]; ok {
		return
	}
	l.records[k] = CompletionRecord{TrackerID: trackerID, Date: civilDay(day)}
	l.counts[trackerID]++
}

func (l *Ledger) remove(trackerID string, day time.Time) {
	k := keyOf(trackerID, day)
	if _, ok := l.records[k]; !ok {
		return
	}
	delete(l.records, k)
	l.counts[trackerID]--
	if l.counts[trackerID] == 0 {
		delete(l.counts, trackerID)
	}
}

func (l *Ledger) IsCompleted(trackerID string, day time.Time) bool {
	if l == nil {
		return false
	}
	_, ok := l.records[keyOf(trackerID, day)]
	return ok
}

// CompletionCount counts every record of the tracker across all dates.
func (l *Ledger) CompletionCount(trackerID string) int {
	if l == nil {
		return 0
	}
	return l.counts[trackerID]
}

func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// Records returns a copy ordered by date, then tracker id.
func (l *Ledger) Records() []CompletionRecord {
	if l == nil {
		return nil
	}
	out := make([]CompletionRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TrackerID < out[j].TrackerID
	})
	return out
}

// Resolve decides what toggling (trackerID, day) would do without changing
// the ledger. Days after today are rejected with ErrFutureDate.
func (l *Ledger) Resolve(trackerID string, day, today time.Time) (ToggleResult, error) {
	if civilDay(day).After(civilDay(today)) {
		return 0, ErrFutureDate
	}
	if l.IsCompleted(trackerID, day) {
		return ToggleRemoved, nil
	}
	return ToggleAdded, nil
}

// Apply mirrors a toggle that the store has already persisted.
func (l *Ledger) Apply(trackerID string, day time.Time, result ToggleResult) {
	switch result {
	case ToggleAdded:
		l.add(trackerID, day)
	case ToggleRemoved:
		l.remove(trackerID, day)
	}
}
