package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

type RouterDependencies struct {
	TrackerHandler *TrackerHandler
	BoardHandler   *BoardHandler
	StatsHandler   *StatsHandler
	Store          domain.Pinger
	Redis          *redis.Client
	CachePrefix    string
	RateLimit      int
	Logger         *zap.Logger
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding"},
		MaxAge:          12 * time.Hour,
	}))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiter(deps.Redis, deps.CachePrefix, deps.RateLimit, time.Minute, log))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		storeStatus := "connected"
		if deps.Store != nil {
			if err := deps.Store.Ping(ctx); err != nil {
				log.Warn("health check: store unreachable", zap.Error(err))
				storeStatus = "unreachable"
			}
		}

		body := gin.H{
			"status": "ok",
			"store":  storeStatus,
			"uptime": time.Since(deps.StartTime).String(),
		}

		statusCode := http.StatusOK
		if storeStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		if deps.Redis != nil {
			redisStatus := "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
			body["redis"] = redisStatus
		}

		if statusCode != http.StatusOK {
			body["status"] = "degraded"
		}
		c.JSON(statusCode, body)
	})

	apiV1 := router.Group("/api/v1")

	deps.TrackerHandler.RegisterRoutes(apiV1)
	deps.BoardHandler.RegisterRoutes(apiV1)
	deps.StatsHandler.RegisterRoutes(apiV1)

	return router
}
