package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var _ domain.TrackerRepository = (*PostgresTrackerRepository)(nil)

type PostgresTrackerRepository struct {
	db *sqlx.DB
}

func NewPostgresTrackerRepository(db *sqlx.DB) *PostgresTrackerRepository {
	return &PostgresTrackerRepository{db: db}
}

func (r *PostgresTrackerRepository) Create(ctx context.Context, t *domain.Tracker, categoryTitle string) error {
	scheduleJSON, err := json.Marshal(t.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	query := `
        INSERT INTO trackers (
            id, category_title, name, emoji, color, schedule, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, categoryTitle, t.Name, t.Emoji, t.Color, scheduleJSON, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to insert tracker: %w", err)
	}
	return nil
}

func (r *PostgresTrackerRepository) GetByID(ctx context.Context, id string) (*domain.Tracker, error) {
	if !validTrackerID(id) {
		return nil, domain.ErrTrackerNotFound
	}

	var row trackerRow
	query := `
        SELECT id, category_title, name, emoji, color, schedule, created_at, updated_at
        FROM trackers WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTrackerNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return row.toDomain()
}

func (r *PostgresTrackerRepository) Update(ctx context.Context, t *domain.Tracker, categoryTitle string) error {
	if !validTrackerID(t.ID) {
		return domain.ErrTrackerNotFound
	}

	scheduleJSON, err := json.Marshal(t.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	query := `
        UPDATE trackers SET
            name = $1, emoji = $2, color = $3, schedule = $4,
            category_title = COALESCE(NULLIF($5, ''), category_title),
            updated_at = $6
        WHERE id = $7`

	res, err := r.db.ExecContext(ctx, query,
		t.Name, t.Emoji, t.Color, scheduleJSON, categoryTitle, t.UpdatedAt, t.ID,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTrackerNotFound
	}
	return nil
}

func (r *PostgresTrackerRepository) Delete(ctx context.Context, id string) error {
	if !validTrackerID(id) {
		return domain.ErrTrackerNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM trackers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTrackerNotFound
	}
	return nil
}
