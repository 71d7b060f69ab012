package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

type TrackerService struct {
	categories domain.CategoryRepository
	trackers   domain.TrackerRepository
}

func NewTrackerService(categories domain.CategoryRepository, trackers domain.TrackerRepository) *TrackerService {
	return &TrackerService{
		categories: categories,
		trackers:   trackers,
	}
}

type CreateTrackerInput struct {
	Name     string
	Emoji    string
	Color    string
	Schedule domain.Schedule
	Category string
}

type UpdateTrackerInput struct {
	ID       string
	Name     string
	Emoji    string
	Color    string
	Schedule domain.Schedule
	// Category moves the tracker when set; empty keeps the current one.
	Category string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

// ensureCategory creates the category, or attaches to it when the title
// already exists.
func (s *TrackerService) ensureCategory(ctx context.Context, title string) (string, error) {
	clean, err := domain.NormalizeCategoryTitle(title)
	if err != nil {
		return "", err
	}

	if _, err := s.categories.Create(ctx, clean); err != nil && !errors.Is(err, domain.ErrDuplicateTitle) {
		return "", domain.WrapPersistence("create category", err)
	}
	return clean, nil
}

func (s *TrackerService) Create(ctx context.Context, input CreateTrackerInput) (*domain.Tracker, error) {
	tracker, err := domain.NewTracker(input.Name, input.Emoji, input.Color, input.Schedule)
	if err != nil {
		return nil, err
	}

	title, err := s.ensureCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	if err := s.trackers.Create(ctx, tracker, title); err != nil {
		return nil, domain.WrapPersistence("create tracker", err)
	}

	return tracker, nil
}

func (s *TrackerService) Update(ctx context.Context, input UpdateTrackerInput) (*domain.Tracker, error) {
	tracker, err := s.trackers.GetByID(ctx, input.ID)
	if err != nil {
		return nil, domain.WrapPersistence("get tracker", err)
	}

	schedule := tracker.Schedule
	if input.Schedule != nil {
		schedule = input.Schedule
	}

	err = tracker.Update(
		mergeString(input.Name, tracker.Name),
		mergeString(input.Emoji, tracker.Emoji),
		mergeString(input.Color, tracker.Color),
		schedule,
	)
	if err != nil {
		return nil, err
	}

	title := ""
	if input.Category != "" {
		if title, err = s.ensureCategory(ctx, input.Category); err != nil {
			return nil, err
		}
	}

	if err := s.trackers.Update(ctx, tracker, title); err != nil {
		return nil, domain.WrapPersistence("update tracker", err)
	}

	return tracker, nil
}

func (s *TrackerService) Delete(ctx context.Context, id string) error {
	return domain.WrapPersistence("delete tracker", s.trackers.Delete(ctx, id))
}

func (s *TrackerService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("list categories", err)
	}
	return categories, nil
}

// CreateCategory surfaces ErrDuplicateTitle so the caller can attach to the
// existing category instead.
func (s *TrackerService) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	clean, err := domain.NormalizeCategoryTitle(title)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.Create(ctx, clean)
	if err != nil {
		return nil, domain.WrapPersistence("create category", err)
	}
	return category, nil
}
