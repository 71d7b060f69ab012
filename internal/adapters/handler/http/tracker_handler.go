package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

// snapshotReloader is the board's explicit reload entry point, called after
// every catalog mutation.
type snapshotReloader interface {
	Reload(ctx context.Context) error
	Invalidate()
}

type TrackerHandler struct {
	svc    *services.TrackerService
	board  snapshotReloader
	logger *zap.Logger
}

func NewTrackerHandler(svc *services.TrackerService, board snapshotReloader, logger *zap.Logger) *TrackerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackerHandler{
		svc:    svc,
		board:  board,
		logger: logger,
	}
}

type createTrackerRequest struct {
	Name     string           `json:"name" binding:"required"`
	Emoji    string           `json:"emoji" binding:"required"`
	Color    string           `json:"color" binding:"required"`
	Schedule []domain.Weekday `json:"schedule" binding:"required"`
	Category string           `json:"category" binding:"required"`
}

type updateTrackerRequest struct {
	Name     string           `json:"name"`
	Emoji    string           `json:"emoji"`
	Color    string           `json:"color"`
	Schedule []domain.Weekday `json:"schedule"`
	Category string           `json:"category"`
}

type createCategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
	}

	trackers := router.Group("/trackers")
	{
		trackers.POST("", h.Create)
		trackers.PUT("/:id", h.Update)
		trackers.DELETE("/:id", h.Delete)
	}
}

func (h *TrackerHandler) reload(c *gin.Context) {
	if err := h.board.Reload(c.Request.Context()); err != nil {
		h.logger.Warn("board reload failed, snapshot invalidated", zap.Error(err))
		h.board.Invalidate()
	}
}

func (h *TrackerHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *TrackerHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), req.Title)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.reload(c)
	c.JSON(http.StatusCreated, category)
}

func (h *TrackerHandler) Create(c *gin.Context) {
	var req createTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreateTrackerInput{
		Name:     req.Name,
		Emoji:    req.Emoji,
		Color:    req.Color,
		Schedule: domain.Schedule(req.Schedule),
		Category: req.Category,
	}

	tracker, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.reload(c)
	c.JSON(http.StatusCreated, tracker)
}

func (h *TrackerHandler) Update(c *gin.Context) {
	var req updateTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateTrackerInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Emoji:    req.Emoji,
		Color:    req.Color,
		Category: req.Category,
	}
	if req.Schedule != nil {
		input.Schedule = domain.Schedule(req.Schedule)
	}

	tracker, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.reload(c)
	c.JSON(http.StatusOK, tracker)
}

func (h *TrackerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, h.logger, err)
		return
	}

	h.reload(c)
	c.Status(http.StatusNoContent)
}
