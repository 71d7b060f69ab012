package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

// BoardService owns the session snapshot (catalog + ledger) the board is
// filtered from. Callers refresh it through Reload after catalog mutations.
type BoardService struct {
	categories domain.CategoryRepository
	records    domain.RecordRepository
	clock      domain.Clock
	loc        *time.Location
	logger     *zap.Logger

	// mu confines the snapshot to one owner at a time; Toggle holds it for
	// the whole resolve/persist/apply sequence.
	mu      sync.RWMutex
	loaded  bool
	catalog *domain.Catalog
	ledger  *domain.Ledger
}

func NewBoardService(categories domain.CategoryRepository, records domain.RecordRepository, clock domain.Clock, loc *time.Location, logger *zap.Logger) *BoardService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{
		categories: categories,
		records:    records,
		clock:      clock,
		loc:        loc,
		logger:     logger,
	}
}

type BoardInput struct {
	// Date is truncated to a calendar day in the reference timezone.
	// The zero value means today.
	Date   time.Time
	Search string
	Status domain.StatusFilter
}

type TrackerCard struct {
	*domain.Tracker
	Completed       bool `json:"completed"`
	CompletionCount int  `json:"completion_count"`
}

type BoardSection struct {
	Title    string        `json:"title"`
	Trackers []TrackerCard `json:"trackers"`
}

type Board struct {
	ReferenceDate string              `json:"reference_date"`
	Filter        domain.StatusFilter `json:"filter"`
	Sections      []BoardSection      `json:"sections"`
	Empty         bool                `json:"empty"`
}

type ToggleOutcome struct {
	TrackerID       string              `json:"tracker_id"`
	Date            string              `json:"date"`
	Result          domain.ToggleResult `json:"result"`
	Completed       bool                `json:"completed"`
	CompletionCount int                 `json:"completion_count"`
}

// Today is the current calendar day in the reference timezone.
func (s *BoardService) Today() time.Time {
	return domain.Day(s.clock.Now(), s.loc)
}

// DayOf truncates an instant to a calendar day in the reference timezone.
func (s *BoardService) DayOf(t time.Time) time.Time {
	return domain.Day(t, s.loc)
}

// ParseDay reads a YYYY-MM-DD value as a calendar day in the reference
// timezone.
func (s *BoardService) ParseDay(raw string) (time.Time, error) {
	t, err := domain.ParseDayIn(raw, s.loc)
	if err != nil {
		return time.Time{}, err
	}
	return s.DayOf(t), nil
}

// Reload replaces the snapshot with the store's current contents.
func (s *BoardService) Reload(ctx context.Context) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return domain.WrapPersistence("list categories", err)
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return domain.WrapPersistence("list completion records", err)
	}

	s.mu.Lock()
	s.catalog = domain.NewCatalog(categories)
	s.ledger = domain.NewLedger(records)
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("board snapshot reloaded",
		zap.Int("categories", len(categories)),
		zap.Int("records", len(records)),
	)
	return nil
}

// Invalidate drops the snapshot so the next read reloads it from the store.
func (s *BoardService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *BoardService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Board filters the snapshot for one screen state.
func (s *BoardService) Board(ctx context.Context, input BoardInput) (*Board, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	query := domain.Query{
		SearchText: input.Search,
		Status:     input.Status,
	}
	if !input.Date.IsZero() {
		query.ReferenceDate = s.DayOf(input.Date)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	view := domain.Filter(s.catalog, s.ledger, query, s.Today())

	board := &Board{
		ReferenceDate: view.ReferenceDate.Format(domain.DayLayout),
		Filter:        view.Status,
		Sections:      make([]BoardSection, 0, len(view.Sections)),
		Empty:         view.Empty(),
	}

	for _, sec := range view.Sections {
		cards := make([]TrackerCard, 0, len(sec.Trackers))
		for _, t := range sec.Trackers {
			cards = append(cards, TrackerCard{
				Tracker:         t,
				Completed:       s.ledger.IsCompleted(t.ID, view.ReferenceDate),
				CompletionCount: s.ledger.CompletionCount(t.ID),
			})
		}
		board.Sections = append(board.Sections, BoardSection{Title: sec.Title, Trackers: cards})
	}

	return board, nil
}

// Toggle marks or unmarks a tracker for the calendar day of day, read in the
// reference timezone. The in-memory ledger only changes after the store
// accepted the write.
func (s *BoardService) Toggle(ctx context.Context, trackerID string, day time.Time) (*ToggleOutcome, error) {
	day = s.DayOf(day)

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.catalog.Tracker(trackerID); err != nil {
		return nil, err
	}

	result, err := s.ledger.Resolve(trackerID, day, s.Today())
	if err != nil {
		return nil, err
	}

	switch result {
	case domain.ToggleAdded:
		err = s.records.Insert(ctx, trackerID, day)
	case domain.ToggleRemoved:
		err = s.records.Delete(ctx, trackerID, day)
	}
	if err != nil {
		return nil, domain.WrapPersistence("toggle completion", err)
	}

	s.ledger.Apply(trackerID, day, result)

	s.logger.Debug("tracker toggled",
		zap.String("tracker_id", trackerID),
		zap.String("date", day.Format(domain.DayLayout)),
		zap.Stringer("result", result),
	)

	return &ToggleOutcome{
		TrackerID:       trackerID,
		Date:            day.Format(domain.DayLayout),
		Result:          result,
		Completed:       s.ledger.IsCompleted(trackerID, day),
		CompletionCount: s.ledger.CompletionCount(trackerID),
	}, nil
}

func (s *BoardService) IsCompleted(ctx context.Context, trackerID string, day time.Time) (bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.IsCompleted(trackerID, s.DayOf(day)), nil
}

func (s *BoardService) CompletionCount(ctx context.Context, trackerID string) (int, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.CompletionCount(trackerID), nil
}
