package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var (
	_ domain.CategoryRepository = (*SQLiteCategoryRepository)(nil)
	_ domain.TrackerRepository  = (*SQLiteTrackerRepository)(nil)
	_ domain.RecordRepository   = (*SQLiteRecordRepository)(nil)
)

type SQLiteCategoryRepository struct {
	db *gorm.DB
}

func NewSQLiteCategoryRepository(db *gorm.DB) *SQLiteCategoryRepository {
	return &SQLiteCategoryRepository{db: db}
}

func (r *SQLiteCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	db := r.db.WithContext(ctx)

	var cats []sqliteCategory
	if err := db.Order("title ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var trackers []sqliteTracker
	if err := db.Order("created_at ASC, rowid ASC").Find(&trackers).Error; err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}

	byCategory := make(map[string][]*domain.Tracker)
	for _, t := range trackers {
		byCategory[t.CategoryTitle] = append(byCategory[t.CategoryTitle], t.toDomain())
	}

	categories := make([]*domain.Category, 0, len(cats))
	for _, c := range cats {
		members := byCategory[c.Title]
		if members == nil {
			members = []*domain.Tracker{}
		}
		categories = append(categories, &domain.Category{Title: c.Title, Trackers: members})
	}
	return categories, nil
}

func (r *SQLiteCategoryRepository) Create(ctx context.Context, title string) (*domain.Category, error) {
	err := r.db.WithContext(ctx).Create(&sqliteCategory{Title: title}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &domain.Category{Title: title, Trackers: []*domain.Tracker{}}, nil
}

type SQLiteTrackerRepository struct {
	db *gorm.DB
}

func NewSQLiteTrackerRepository(db *gorm.DB) *SQLiteTrackerRepository {
	return &SQLiteTrackerRepository{db: db}
}

func categoryExists(tx *gorm.DB, title string) error {
	var count int64
	if err := tx.Model(&sqliteCategory{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if count == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *SQLiteTrackerRepository) Create(ctx context.Context, t *domain.Tracker, categoryTitle string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := categoryExists(tx, categoryTitle); err != nil {
			return err
		}

		row := sqliteTracker{
			ID:            t.ID,
			CategoryTitle: categoryTitle,
			Name:          t.Name,
			Emoji:         t.Emoji,
			Color:         t.Color,
			Schedule:      t.Schedule,
			CreatedAt:     t.CreatedAt,
			UpdatedAt:     t.UpdatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create tracker: %w", err)
		}
		return nil
	})
}

func (r *SQLiteTrackerRepository) GetByID(ctx context.Context, id string) (*domain.Tracker, error) {
	var row sqliteTracker
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTrackerNotFound
		}
		return nil, fmt.Errorf("find tracker: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SQLiteTrackerRepository) Update(ctx context.Context, t *domain.Tracker, categoryTitle string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		columns := []string{"name", "emoji", "color", "schedule", "updated_at"}
		row := sqliteTracker{
			Name:      t.Name,
			Emoji:     t.Emoji,
			Color:     t.Color,
			Schedule:  t.Schedule,
			UpdatedAt: t.UpdatedAt,
		}
		if categoryTitle != "" {
			if err := categoryExists(tx, categoryTitle); err != nil {
				return err
			}
			columns = append(columns, "category_title")
			row.CategoryTitle = categoryTitle
		}

		res := tx.Model(&sqliteTracker{}).Where("id = ?", t.ID).Select(columns).Updates(&row)
		if res.Error != nil {
			return fmt.Errorf("update tracker: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTrackerNotFound
		}
		return nil
	})
}

func (r *SQLiteTrackerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&sqliteTracker{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete tracker: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTrackerNotFound
		}

		if err := tx.Delete(&sqliteRecord{}, "tracker_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete tracker records: %w", err)
		}
		return nil
	})
}

type SQLiteRecordRepository struct {
	db *gorm.DB
}

func NewSQLiteRecordRepository(db *gorm.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

func (r *SQLiteRecordRepository) List(ctx context.Context) ([]domain.CompletionRecord, error) {
	var rows []sqliteRecord
	if err := r.db.WithContext(ctx).Order("completion_date ASC, tracker_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]domain.CompletionRecord, 0, len(rows))
	for _, row := range rows {
		day, err := domain.ParseDay(row.CompletionDate)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.CompletionRecord{TrackerID: row.TrackerID, Date: day})
	}
	return records, nil
}

func (r *SQLiteRecordRepository) Insert(ctx context.Context, trackerID string, day time.Time) error {
	rec, err := domain.NewCompletionRecord(trackerID, day)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&sqliteTracker{}).Where("id = ?", trackerID).Count(&count).Error; err != nil {
			return fmt.Errorf("find tracker: %w", err)
		}
		if count == 0 {
			return domain.ErrTrackerNotFound
		}

		row := sqliteRecord{TrackerID: rec.TrackerID, CompletionDate: rec.Date.Format(domain.DayLayout)}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRecordRepository) Delete(ctx context.Context, trackerID string, day time.Time) error {
	rec, err := domain.NewCompletionRecord(trackerID, day)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Where("tracker_id = ? AND completion_date = ?", rec.TrackerID, rec.Date.Format(domain.DayLayout)).
		Delete(&sqliteRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
