package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string        `json:"error"`
	Kind  apperror.Kind `json:"kind"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it is logged and reported as 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Code, ErrorResponse{Error: appErr.Message, Kind: appErr.Kind})
		return
	}

	if logger, ok := c.Get(LoggerKey); ok {
		if l, ok := logger.(*zap.Logger); ok {
			l.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		}
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Kind:  apperror.KindInternal,
	})
}

// LoggerKey is the gin context key holding the request-scoped *zap.Logger.
const LoggerKey = "logger"

// BindError rejects a request whose parameters failed binding. Nothing has
// been sent to the backend at this point.
func BindError(c *gin.Context, message string, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   message,
		"kind":    apperror.KindValidation,
		"details": err.Error(),
	})
}
