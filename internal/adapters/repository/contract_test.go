package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestTracker(t *testing.T, name string, schedule ...domain.Weekday) *domain.Tracker {
	t.Helper()
	tr, err := domain.NewTracker(name, "✅", "#00AA00", domain.NewSchedule(schedule...))
	require.NoError(t, err)
	return tr
}

// runStoreContract exercises the behavior every store backend shares.
// The store must start empty.
func runStoreContract(t *testing.T, categories domain.CategoryRepository, trackers domain.TrackerRepository, records domain.RecordRepository) {
	ctx := context.Background()

	_, err := categories.Create(ctx, "Study")
	require.NoError(t, err)
	_, err = categories.Create(ctx, "Health")
	require.NoError(t, err)

	run := newTestTracker(t, "Morning Run", domain.Monday, domain.Wednesday, domain.Friday)
	swim := newTestTracker(t, "Swim", domain.Saturday)
	read := newTestTracker(t, "Read", domain.Sunday)

	t.Run("Categories", func(t *testing.T) {
		_, err := categories.Create(ctx, "Health")
		assert.ErrorIs(t, err, domain.ErrDuplicateTitle)

		require.NoError(t, trackers.Create(ctx, run, "Health"))
		require.NoError(t, trackers.Create(ctx, swim, "Health"))
		require.NoError(t, trackers.Create(ctx, read, "Study"))

		err = trackers.Create(ctx, newTestTracker(t, "Orphan", domain.Monday), "Nope")
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

		list, err := categories.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)

		assert.Equal(t, "Health", list[0].Title)
		require.Len(t, list[0].Trackers, 2)
		assert.Equal(t, run.ID, list[0].Trackers[0].ID)
		assert.Equal(t, swim.ID, list[0].Trackers[1].ID)
		assert.Equal(t, domain.Schedule{domain.Monday, domain.Wednesday, domain.Friday}, list[0].Trackers[0].Schedule)

		assert.Equal(t, "Study", list[1].Title)
		require.Len(t, list[1].Trackers, 1)
		assert.Equal(t, "Read", list[1].Trackers[0].Name)
	})

	t.Run("Trackers", func(t *testing.T) {
		got, err := trackers.GetByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, "Morning Run", got.Name)
		assert.Equal(t, "#00AA00", got.Color)

		require.NoError(t, got.Update("Evening Run", "🌙", "#112233", domain.Schedule{domain.Tuesday}))
		require.NoError(t, trackers.Update(ctx, got, ""))

		got, err = trackers.GetByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, "Evening Run", got.Name)
		assert.Equal(t, "🌙", got.Emoji)
		assert.Equal(t, domain.Schedule{domain.Tuesday}, got.Schedule)

		require.NoError(t, trackers.Update(ctx, got, "Study"))
		list, err := categories.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list[0].Trackers, 1)
		assert.Len(t, list[1].Trackers, 2)

		assert.ErrorIs(t, trackers.Update(ctx, got, "Nope"), domain.ErrCategoryNotFound)

		ghost := newTestTracker(t, "Ghost", domain.Monday)
		assert.ErrorIs(t, trackers.Update(ctx, ghost, ""), domain.ErrTrackerNotFound)

		_, err = trackers.GetByID(ctx, ghost.ID)
		assert.ErrorIs(t, err, domain.ErrTrackerNotFound)
	})

	t.Run("Malformed tracker id", func(t *testing.T) {
		const badID = "not-a-uuid"

		_, err := trackers.GetByID(ctx, badID)
		assert.ErrorIs(t, err, domain.ErrTrackerNotFound)
		assert.ErrorIs(t, trackers.Delete(ctx, badID), domain.ErrTrackerNotFound)

		ghost := newTestTracker(t, "Ghost", domain.Monday)
		ghost.ID = badID
		assert.ErrorIs(t, trackers.Update(ctx, ghost, ""), domain.ErrTrackerNotFound)

		assert.ErrorIs(t, records.Insert(ctx, badID, day(2024, 1, 1)), domain.ErrTrackerNotFound)
		assert.NoError(t, records.Delete(ctx, badID, day(2024, 1, 1)))
	})

	t.Run("Records", func(t *testing.T) {
		require.NoError(t, records.Insert(ctx, run.ID, day(2024, 1, 2)))
		require.NoError(t, records.Insert(ctx, run.ID, day(2024, 1, 1)))
		require.NoError(t, records.Insert(ctx, swim.ID, day(2024, 1, 1)))
		// Idempotent.
		require.NoError(t, records.Insert(ctx, run.ID, day(2024, 1, 2)))

		list, err := records.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.True(t, list[0].Date.Equal(day(2024, 1, 1)))
		assert.True(t, list[2].Date.Equal(day(2024, 1, 2)))
		assert.Equal(t, run.ID, list[2].TrackerID)

		assert.ErrorIs(t, records.Insert(ctx, "00000000-0000-0000-0000-000000000000", day(2024, 1, 1)), domain.ErrTrackerNotFound)

		require.NoError(t, records.Delete(ctx, run.ID, day(2024, 1, 2)))
		require.NoError(t, records.Delete(ctx, run.ID, day(2024, 1, 2)), "deleting an absent record is a no-op")

		list, err = records.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Delete cascades", func(t *testing.T) {
		require.NoError(t, trackers.Delete(ctx, run.ID))
		assert.ErrorIs(t, trackers.Delete(ctx, run.ID), domain.ErrTrackerNotFound)

		list, err := records.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, swim.ID, list[0].TrackerID)
	})
}
