package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

// failingCategories rejects every write with a store error.
type failingCategories struct {
	domain.CategoryRepository
	err error
}

func (f failingCategories) Create(ctx context.Context, title string) (*domain.Category, error) {
	return nil, f.err
}

func validInput(name, category string) services.CreateTrackerInput {
	return services.CreateTrackerInput{
		Name:     name,
		Emoji:    "✅",
		Color:    "#00AA00",
		Schedule: domain.EveryDay(),
		Category: category,
	}
}

func TestTrackerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates the category on first use and attaches afterwards", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		svc := services.NewTrackerService(store.Categories(), store.Trackers())

		first, err := svc.Create(ctx, validInput("Run", " Health "))
		require.NoError(t, err)
		_, err = svc.Create(ctx, validInput("Swim", "Health"))
		require.NoError(t, err)

		cats, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Health", cats[0].Title)
		require.Len(t, cats[0].Trackers, 2)
		assert.Equal(t, first.ID, cats[0].Trackers[0].ID)
	})

	t.Run("Validation happens before any write", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		svc := services.NewTrackerService(store.Categories(), store.Trackers())

		input := validInput("Run", "Health")
		input.Schedule = nil
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEmptySchedule)

		_, err = svc.Create(ctx, validInput("Run", "   "))
		assert.ErrorIs(t, err, domain.ErrCategoryTitleEmpty)

		cats, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, cats)
	})

	t.Run("Store errors are wrapped", func(t *testing.T) {
		store := repository.NewInMemoryStore()
		cats := failingCategories{CategoryRepository: store.Categories(), err: errors.New("read-only")}
		svc := services.NewTrackerService(cats, store.Trackers())

		_, err := svc.Create(ctx, validInput("Run", "Health"))
		var pe *domain.PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "create category", pe.Op)
	})
}

func TestTrackerService_Update(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryStore()
	svc := services.NewTrackerService(store.Categories(), store.Trackers())

	created, err := svc.Create(ctx, validInput("Run", "Health"))
	require.NoError(t, err)

	t.Run("Partial update keeps unset fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, services.UpdateTrackerInput{ID: created.ID, Name: "Jog"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Jog", updated.Name)
		assert.Equal(t, "✅", updated.Emoji)
		assert.Equal(t, domain.EveryDay(), updated.Schedule)
	})

	t.Run("Moves to a new category", func(t *testing.T) {
		_, err := svc.Update(ctx, services.UpdateTrackerInput{
			ID:       created.ID,
			Schedule: domain.Schedule{domain.Saturday},
			Category: "Weekend",
		})
		require.NoError(t, err)

		cats, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Empty(t, cats[0].Trackers, "Health is kept, now empty")
		assert.Equal(t, "Weekend", cats[1].Title)
		assert.Equal(t, domain.Schedule{domain.Saturday}, cats[1].Trackers[0].Schedule)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, services.UpdateTrackerInput{ID: created.ID, Color: "blue"})
		assert.ErrorIs(t, err, domain.ErrInvalidColor)

		stored, err := store.Trackers().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "#00AA00", stored.Color)
	})

	t.Run("Unknown tracker", func(t *testing.T) {
		_, err := svc.Update(ctx, services.UpdateTrackerInput{ID: "nope", Name: "X"})
		assert.ErrorIs(t, err, domain.ErrTrackerNotFound)
	})
}

func TestTrackerService_Delete(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryStore()
	svc := services.NewTrackerService(store.Categories(), store.Trackers())

	created, err := svc.Create(ctx, validInput("Run", "Health"))
	require.NoError(t, err)
	require.NoError(t, store.Records().Insert(ctx, created.ID, day(2024, 1, 1)))

	require.NoError(t, svc.Delete(ctx, created.ID))

	records, err := store.Records().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "records cascade with the tracker")

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrTrackerNotFound)
}

func TestTrackerService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	store := repository.NewInMemoryStore()
	svc := services.NewTrackerService(store.Categories(), store.Trackers())

	cat, err := svc.CreateCategory(ctx, "Mind")
	require.NoError(t, err)
	assert.Equal(t, "Mind", cat.Title)
	assert.NotNil(t, cat.Trackers)

	_, err = svc.CreateCategory(ctx, "Mind")
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
}
