package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

func TestCalculateStatistics(t *testing.T) {
	rec := func(id string, d int) domain.CompletionRecord {
		return domain.CompletionRecord{TrackerID: id, Date: day(2024, 1, d)}
	}

	tests := []struct {
		name    string
		records []domain.CompletionRecord
		want    domain.Statistics
	}{
		{
			name:    "Empty history",
			records: nil,
			want:    domain.Statistics{},
		},
		{
			name:    "Single completion",
			records: []domain.CompletionRecord{rec("a", 5)},
			want:    domain.Statistics{BestPeriod: 1, PerfectDays: 1, CompletedTrackers: 1, AverageValue: 1},
		},
		{
			name:    "Run of three with a gap",
			records: []domain.CompletionRecord{rec("a", 1), rec("a", 2), rec("a", 3), rec("a", 5)},
			want:    domain.Statistics{BestPeriod: 3, PerfectDays: 4, CompletedTrackers: 4, AverageValue: 1},
		},
		{
			name:    "Unsorted input",
			records: []domain.CompletionRecord{rec("a", 20), rec("a", 3), rec("a", 19), rec("a", 4), rec("a", 21)},
			want:    domain.Statistics{BestPeriod: 3, PerfectDays: 5, CompletedTrackers: 5, AverageValue: 1},
		},
		{
			name:    "Several trackers per day, integer average",
			records: []domain.CompletionRecord{rec("a", 1), rec("b", 1), rec("c", 1), rec("a", 2), rec("b", 2)},
			want:    domain.Statistics{BestPeriod: 2, PerfectDays: 2, CompletedTrackers: 5, AverageValue: 2},
		},
		{
			name: "Run across a month boundary",
			records: []domain.CompletionRecord{
				{TrackerID: "a", Date: day(2024, 1, 31)},
				{TrackerID: "a", Date: day(2024, 2, 1)},
			},
			want: domain.Statistics{BestPeriod: 2, PerfectDays: 2, CompletedTrackers: 2, AverageValue: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CalculateStatistics(tt.records))
		})
	}
}
