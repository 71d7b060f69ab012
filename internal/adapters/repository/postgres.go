package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/postgres.sql
var postgresSchema string

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NewPostgresDB connects through the pgx stdlib driver and applies the schema.
func NewPostgresDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := MigratePostgres(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func MigratePostgres(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to apply postgres schema: %w", err)
	}
	return nil
}

// pgErrorCode extracts the SQLSTATE from either driver the repositories run on.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

type PostgresPinger struct {
	db *sqlx.DB
}

func NewPostgresPinger(db *sqlx.DB) *PostgresPinger {
	return &PostgresPinger{db: db}
}

func (p *PostgresPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// validTrackerID reports whether id can match trackers.id, which is a UUID
// column. Postgres rejects other strings with 22P02 instead of matching nothing.
func validTrackerID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
