package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var _ domain.CategoryRepository = (*PostgresCategoryRepository)(nil)

type PostgresCategoryRepository struct {
	db *sqlx.DB
}

func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

type trackerRow struct {
	ID            string    `db:"id"`
	CategoryTitle string    `db:"category_title"`
	Name          string    `db:"name"`
	Emoji         string    `db:"emoji"`
	Color         string    `db:"color"`
	Schedule      []byte    `db:"schedule"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row trackerRow) toDomain() (*domain.Tracker, error) {
	t := &domain.Tracker{
		ID:        row.ID,
		Name:      row.Name,
		Emoji:     row.Emoji,
		Color:     row.Color,
		Schedule:  domain.Schedule{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.Schedule) > 0 {
		if err := json.Unmarshal(row.Schedule, &t.Schedule); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
		}
	}
	return t, nil
}

func (r *PostgresCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var titles []string
	if err := r.db.SelectContext(ctx, &titles, `SELECT title FROM categories ORDER BY title ASC`); err != nil {
		return nil, fmt.Errorf("category query error: %w", err)
	}

	var rows []trackerRow
	query := `
        SELECT id, category_title, name, emoji, color, schedule, created_at, updated_at
        FROM trackers
        ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("tracker query error: %w", err)
	}

	byCategory := make(map[string][]*domain.Tracker)
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		byCategory[row.CategoryTitle] = append(byCategory[row.CategoryTitle], t)
	}

	categories := make([]*domain.Category, 0, len(titles))
	for _, title := range titles {
		trackers := byCategory[title]
		if trackers == nil {
			trackers = []*domain.Tracker{}
		}
		categories = append(categories, &domain.Category{Title: title, Trackers: trackers})
	}

	return categories, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, title string) (*domain.Category, error) {
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories (title) VALUES ($1)`, title)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &domain.Category{Title: title, Trackers: []*domain.Tracker{}}, nil
}
