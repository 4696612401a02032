package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description,omitempty"`
}

// respondError переводит ошибку сервиса в HTTP-ответ
func (h *Handlers) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var notFound *model.NotFoundError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Description: notFound.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Description: err.Error()})
	case errors.Is(err, service.ErrUnknownReport):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Description: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Request cancelled",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "request cancelled"})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad request", Description: description})
}
