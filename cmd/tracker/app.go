package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/habit-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-tracker/internal/config"
	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

// app holds the wired store for one process. Close releases every
// connection it opened.
type app struct {
	cfg config.Config
	log *zap.Logger

	categories domain.CategoryRepository
	trackers   domain.TrackerRepository
	records    domain.RecordRepository
	pinger     domain.Pinger
	redis      *redis.Client

	closers []func() error
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger, withCache bool) (_ *app, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &app{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			log.Warn("startup aborted, releasing opened connections",
				zap.Int("connections", len(a.closers)), zap.Error(err))
			a.Close()
		}
	}()

	switch cfg.Driver {
	case config.DriverMemory:
		store := repository.NewInMemoryStore()
		a.categories, a.trackers, a.records = store.Categories(), store.Trackers(), store.Records()
		a.pinger = store

	case config.DriverSQLite:
		db, err := repository.NewSQLiteDB(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sqlDB.Close)

		a.categories = repository.NewSQLiteCategoryRepository(db)
		a.trackers = repository.NewSQLiteTrackerRepository(db)
		a.records = repository.NewSQLiteRecordRepository(db)
		a.pinger = repository.NewSQLitePinger(db)
		log.Info("sqlite store opened", zap.String("path", cfg.SQLitePath))

	case config.DriverPostgres:
		db, err := repository.NewPostgresDB(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		a.categories = repository.NewPostgresCategoryRepository(db)
		a.trackers = repository.NewPostgresTrackerRepository(db)
		a.records = repository.NewPostgresRecordRepository(db)
		a.pinger = repository.NewPostgresPinger(db)
		log.Info("postgres store connected", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if withCache && cfg.RedisEnabled {
		opts := redisOptions(cfg)
		rdb, err := cache.NewRedisClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		a.closers = append(a.closers, rdb.Close)

		a.categories, a.trackers = repository.NewCachedCatalog(a.categories, a.trackers, rdb, cfg.CachePrefix, log)
		log.Info("redis catalog cache enabled", zap.String("addr", opts.Addr()))
	}

	return a, nil
}

func redisOptions(cfg config.Config) cache.RedisOptions {
	return cache.RedisOptions{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *app) boardService(clock domain.Clock) *services.BoardService {
	return services.NewBoardService(a.categories, a.records, clock, a.cfg.Location, a.log)
}

func (a *app) trackerService() *services.TrackerService {
	return services.NewTrackerService(a.categories, a.trackers)
}

func (a *app) statsService() *services.StatsService {
	return services.NewStatsService(a.records)
}

func (a *app) router(startTime time.Time) *gin.Engine {
	board := a.boardService(nil)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		TrackerHandler: adapterHTTP.NewTrackerHandler(a.trackerService(), board, a.log),
		BoardHandler:   adapterHTTP.NewBoardHandler(board, a.log),
		StatsHandler:   adapterHTTP.NewStatsHandler(a.statsService(), a.log),
		Store:          a.pinger,
		Redis:          a.redis,
		CachePrefix:    a.cfg.CachePrefix,
		RateLimit:      a.cfg.RateLimit,
		Logger:         a.log,
		StartTime:      startTime,
	})
}
