package domain

import (
	"sort"
	"time"
)

// Statistics are recomputed from the whole ledger on every request.
// A perfect day is any day with at least one completion.
type Statistics struct {
	BestPeriod        int `json:"best_period"`
	PerfectDays       int `json:"perfect_days"`
	CompletedTrackers int `json:"completed_trackers"`
	AverageValue      int `json:"average_value"`
}

func CalculateStatistics(records []CompletionRecord) Statistics {
	if len(records) == 0 {
		return Statistics{}
	}

	uniqueDays := make(map[string]bool)
	var days []time.Time

	for _, r := range records {
		day := civilDay(r.Date)
		key := day.Format(DayLayout)
		if !uniqueDays[key] {
			uniqueDays[key] = true
			days = append(days, day)
		}
	}

	stats := Statistics{
		CompletedTrackers: len(records),
		PerfectDays:       len(days),
		BestPeriod:        longestRun(days),
	}
	if stats.PerfectDays > 0 {
		stats.AverageValue = stats.CompletedTrackers / stats.PerfectDays
	}

	return stats
}

// longestRun returns the longest stretch of consecutive calendar days.
func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest := 1
	current := 1

	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}

	return longest
}
