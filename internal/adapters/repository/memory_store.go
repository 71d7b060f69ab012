package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var (
	_ domain.CategoryRepository = (*InMemoryCategoryRepository)(nil)
	_ domain.TrackerRepository  = (*InMemoryTrackerRepository)(nil)
	_ domain.RecordRepository   = (*InMemoryRecordRepository)(nil)
)

type memTracker struct {
	tracker  domain.Tracker
	category string
	seq      int
}

type memRecordKey struct {
	trackerID string
	day       string
}

// InMemoryStore keeps the whole catalog and ledger in process memory.
// The three repositories it hands out share its state.
type InMemoryStore struct {
	categories map[string]bool
	trackers   map[string]*memTracker
	records    map[memRecordKey]domain.CompletionRecord
	seq        int

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		categories: make(map[string]bool),
		trackers:   make(map[string]*memTracker),
		records:    make(map[memRecordKey]domain.CompletionRecord),
	}
}

func (s *InMemoryStore) Categories() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{s: s}
}

func (s *InMemoryStore) Trackers() *InMemoryTrackerRepository {
	return &InMemoryTrackerRepository{s: s}
}

func (s *InMemoryStore) Records() *InMemoryRecordRepository {
	return &InMemoryRecordRepository{s: s}
}

func (s *InMemoryStore) Ping(ctx context.Context) error {
	return nil
}

func copyTracker(t domain.Tracker) *domain.Tracker {
	t.Schedule = append(domain.Schedule(nil), t.Schedule...)
	return &t
}

type InMemoryCategoryRepository struct {
	s *InMemoryStore
}

func (r *InMemoryCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	titles := make([]string, 0, len(r.s.categories))
	for title := range r.s.categories {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	byCategory := make(map[string][]*memTracker)
	for _, mt := range r.s.trackers {
		byCategory[mt.category] = append(byCategory[mt.category], mt)
	}

	categories := make([]*domain.Category, 0, len(titles))
	for _, title := range titles {
		members := byCategory[title]
		sort.Slice(members, func(i, j int) bool { return members[i].seq < members[j].seq })

		cat := &domain.Category{Title: title, Trackers: make([]*domain.Tracker, 0, len(members))}
		for _, mt := range members {
			cat.Trackers = append(cat.Trackers, copyTracker(mt.tracker))
		}
		categories = append(categories, cat)
	}

	return categories, nil
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, title string) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.categories[title] {
		return nil, domain.ErrDuplicateTitle
	}
	r.s.categories[title] = true

	return &domain.Category{Title: title, Trackers: []*domain.Tracker{}}, nil
}

type InMemoryTrackerRepository struct {
	s *InMemoryStore
}

func (r *InMemoryTrackerRepository) Create(ctx context.Context, tracker *domain.Tracker, categoryTitle string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.categories[categoryTitle] {
		return domain.ErrCategoryNotFound
	}

	r.s.seq++
	r.s.trackers[tracker.ID] = &memTracker{
		tracker:  *copyTracker(*tracker),
		category: categoryTitle,
		seq:      r.s.seq,
	}
	return nil
}

func (r *InMemoryTrackerRepository) GetByID(ctx context.Context, id string) (*domain.Tracker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	mt, ok := r.s.trackers[id]
	if !ok {
		return nil, domain.ErrTrackerNotFound
	}
	return copyTracker(mt.tracker), nil
}

func (r *InMemoryTrackerRepository) Update(ctx context.Context, tracker *domain.Tracker, categoryTitle string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	mt, ok := r.s.trackers[tracker.ID]
	if !ok {
		return domain.ErrTrackerNotFound
	}
	if categoryTitle != "" {
		if !r.s.categories[categoryTitle] {
			return domain.ErrCategoryNotFound
		}
		mt.category = categoryTitle
	}

	mt.tracker = *copyTracker(*tracker)
	return nil
}

func (r *InMemoryTrackerRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.trackers[id]; !ok {
		return domain.ErrTrackerNotFound
	}

	delete(r.s.trackers, id)
	for k := range r.s.records {
		if k.trackerID == id {
			delete(r.s.records, k)
		}
	}
	return nil
}

type InMemoryRecordRepository struct {
	s *InMemoryStore
}

func (r *InMemoryRecordRepository) List(ctx context.Context) ([]domain.CompletionRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := make([]domain.CompletionRecord, 0, len(r.s.records))
	for _, rec := range r.s.records {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (r *InMemoryRecordRepository) Insert(ctx context.Context, trackerID string, day time.Time) error {
	rec, err := domain.NewCompletionRecord(trackerID, day)
	if err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.trackers[trackerID]; !ok {
		return domain.ErrTrackerNotFound
	}

	r.s.records[memRecordKey{trackerID, rec.Date.Format(domain.DayLayout)}] = rec
	return nil
}

func (r *InMemoryRecordRepository) Delete(ctx context.Context, trackerID string, day time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	y, m, d := day.Date()
	key := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(domain.DayLayout)
	delete(r.s.records, memRecordKey{trackerID, key})
	return nil
}
