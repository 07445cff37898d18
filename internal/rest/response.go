package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"storefrontReco/business/recommendation"
	"storefrontReco/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func authUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok && userID > 0
}

func parseUserIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, recommendation.ErrInvalidUserID
	}
	return uint(id), nil
}

// serviceError maps engine errors to a status: caller mistakes are 400,
// deadline hits 504, everything else 500.
func serviceError(c echo.Context, err error, msg string) error {
	switch {
	case recommendation.IsValidationError(err):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error(msg, "error", err, "trace_id", recommendation.TraceIDFromContext(c.Request().Context()))
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: "request timed out"})
	default:
		logger.Error(msg, "error", err, "trace_id", recommendation.TraceIDFromContext(c.Request().Context()))
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
