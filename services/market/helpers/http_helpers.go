package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"service-market/internal/marketerrors"
	"service-market/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrValidation):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, marketerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, marketerrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, marketerrors.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, marketerrors.ErrInvalidState):
		return http.StatusUnprocessableEntity, "invalid state for operation"
	case errors.Is(err, marketerrors.ErrDependency):
		return http.StatusBadGateway, "dependency failure"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
