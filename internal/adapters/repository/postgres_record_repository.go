package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var _ domain.RecordRepository = (*PostgresRecordRepository)(nil)

type PostgresRecordRepository struct {
	db *sqlx.DB
}

func NewPostgresRecordRepository(db *sqlx.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db}
}

func (r *PostgresRecordRepository) List(ctx context.Context) ([]domain.CompletionRecord, error) {
	records := []domain.CompletionRecord{}

	query := `
        SELECT tracker_id, completion_date FROM completion_records
        ORDER BY completion_date ASC, tracker_id ASC`

	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("record query error: %w", err)
	}
	return records, nil
}

func (r *PostgresRecordRepository) Insert(ctx context.Context, trackerID string, day time.Time) error {
	rec, err := domain.NewCompletionRecord(trackerID, day)
	if err != nil {
		return err
	}
	if !validTrackerID(rec.TrackerID) {
		return domain.ErrTrackerNotFound
	}

	query := `
        INSERT INTO completion_records (tracker_id, completion_date)
        VALUES (:tracker_id, :completion_date)
        ON CONFLICT (tracker_id, completion_date) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrTrackerNotFound
		}
		return fmt.Errorf("failed to insert completion record: %w", err)
	}
	return nil
}

func (r *PostgresRecordRepository) Delete(ctx context.Context, trackerID string, day time.Time) error {
	rec, err := domain.NewCompletionRecord(trackerID, day)
	if err != nil {
		return err
	}
	if !validTrackerID(rec.TrackerID) {
		return nil
	}

	query := `DELETE FROM completion_records WHERE tracker_id = $1 AND completion_date = $2`
	if _, err := r.db.ExecContext(ctx, query, rec.TrackerID, rec.Date); err != nil {
		return fmt.Errorf("failed to delete completion record: %w", err)
	}
	return nil
}
