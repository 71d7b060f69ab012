package domain

import (
	"context"
	"time"
)

type CategoryRepository interface {
	// List returns every category with its trackers, in the store's order
	// (alphabetical by title).
	List(ctx context.Context) ([]*Category, error)

	// Create adds an empty category.
	// Returns ErrDuplicateTitle when the title is already taken.
	Create(ctx context.Context, title string) (*Category, error)
}

type TrackerRepository interface {
	// Create persists a tracker under an existing category.
	// Returns ErrCategoryNotFound when the title does not exist.
	Create(ctx context.Context, tracker *Tracker, categoryTitle string) error

	GetByID(ctx context.Context, id string) (*Tracker, error)

	// Update replaces the editable fields and moves the tracker to
	// categoryTitle, which must already exist.
	Update(ctx context.Context, tracker *Tracker, categoryTitle string) error

	// Delete removes the tracker and cascades to its completion records.
	Delete(ctx context.Context, id string) error
}

type RecordRepository interface {
	List(ctx context.Context) ([]CompletionRecord, error)

	// Insert is idempotent for an existing (trackerID, day) pair.
	Insert(ctx context.Context, trackerID string, day time.Time) error

	Delete(ctx context.Context, trackerID string, day time.Time) error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
