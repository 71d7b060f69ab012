package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

type sqliteCategory struct {
	Title     string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (sqliteCategory) TableName() string { return "categories" }

type sqliteTracker struct {
	ID            string          `gorm:"primaryKey"`
	CategoryTitle string          `gorm:"index;not null"`
	Name          string          `gorm:"not null"`
	Emoji         string          `gorm:"not null"`
	Color         string          `gorm:"not null"`
	Schedule      domain.Schedule `gorm:"serializer:json;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (sqliteTracker) TableName() string { return "trackers" }

func (t sqliteTracker) toDomain() *domain.Tracker {
	schedule := t.Schedule
	if schedule == nil {
		schedule = domain.Schedule{}
	}
	return &domain.Tracker{
		ID:        t.ID,
		Name:      t.Name,
		Emoji:     t.Emoji,
		Color:     t.Color,
		Schedule:  schedule,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// sqliteRecord stores the day as YYYY-MM-DD so identity never depends on
// how the driver round-trips timestamps.
type sqliteRecord struct {
	TrackerID      string `gorm:"primaryKey"`
	CompletionDate string `gorm:"primaryKey"`
}

func (sqliteRecord) TableName() string { return "completion_records" }

// NewSQLiteDB opens the local database file and runs migrations.
func NewSQLiteDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "tracker.db"
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&sqliteCategory{}, &sqliteTracker{}, &sqliteRecord{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

type SQLitePinger struct {
	db *gorm.DB
}

func NewSQLitePinger(db *gorm.DB) *SQLitePinger {
	return &SQLitePinger{db: db}
}

func (p *SQLitePinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
