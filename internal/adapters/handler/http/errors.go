package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var validationErrors = []error{
	domain.ErrTrackerNameEmpty,
	domain.ErrTrackerNameTooLong,
	domain.ErrEmojiEmpty,
	domain.ErrEmojiTooLong,
	domain.ErrInvalidColor,
	domain.ErrEmptySchedule,
	domain.ErrInvalidWeekday,
	domain.ErrCategoryTitleEmpty,
	domain.ErrCategoryTitleTooLong,
	domain.ErrInvalidFilter,
	domain.ErrInvalidRecord,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func handleError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrFutureDate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "future date",
			"message": err.Error(),
		})

	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrTrackerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "tracker not found"})

	case errors.Is(err, domain.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})

	case errors.Is(err, domain.ErrDuplicateTitle):
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})

	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
