package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

func TestStatsService_GetStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty history", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("List", mock.Anything).Return([]domain.CompletionRecord{}, nil)

		report, err := services.NewStatsService(records).GetStatistics(ctx)
		require.NoError(t, err)
		assert.True(t, report.Empty)
		assert.Equal(t, domain.Statistics{}, report.Statistics)
	})

	t.Run("Duplicates from the store count once", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("List", mock.Anything).Return([]domain.CompletionRecord{
			{TrackerID: "a", Date: day(2024, 1, 1)},
			{TrackerID: "a", Date: day(2024, 1, 1)},
			{TrackerID: "b", Date: day(2024, 1, 1)},
			{TrackerID: "a", Date: day(2024, 1, 2)},
			{TrackerID: "a", Date: day(2024, 1, 3)},
			{TrackerID: "b", Date: day(2024, 1, 5)},
		}, nil)

		report, err := services.NewStatsService(records).GetStatistics(ctx)
		require.NoError(t, err)
		assert.False(t, report.Empty)
		assert.Equal(t, domain.Statistics{
			BestPeriod:        3,
			PerfectDays:       4,
			CompletedTrackers: 5,
			AverageValue:      1,
		}, report.Statistics)
	})

	t.Run("Store failure", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("List", mock.Anything).Return(nil, errors.New("timeout"))

		_, err := services.NewStatsService(records).GetStatistics(ctx)
		var pe *domain.PersistenceError
		assert.ErrorAs(t, err, &pe)
	})
}
