package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

type BoardHandler struct {
	board  *services.BoardService
	logger *zap.Logger
}

func NewBoardHandler(board *services.BoardService, logger *zap.Logger) *BoardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardHandler{board: board, logger: logger}
}

type toggleRequest struct {
	Date string `json:"date"`
}

func (h *BoardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/board", h.GetBoard)
	router.POST("/trackers/:id/toggle", h.Toggle)
}

// parseDay reads an optional YYYY-MM-DD value; empty means today.
func (h *BoardHandler) parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return h.board.Today(), nil
	}
	return h.board.ParseDay(raw)
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := h.board.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	status, err := domain.ParseStatusFilter(c.Query("filter"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	board, err := h.board.Board(c.Request.Context(), services.BoardInput{
		Date:   date,
		Search: c.Query("search"),
		Status: status,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := h.parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	outcome, err := h.board.Toggle(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
