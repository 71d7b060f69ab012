package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

type StatsHandler struct {
	svc    *services.StatsService
	logger *zap.Logger
}

func NewStatsHandler(svc *services.StatsService, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStatistics)
}

func (h *StatsHandler) GetStatistics(c *gin.Context) {
	report, err := h.svc.GetStatistics(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
