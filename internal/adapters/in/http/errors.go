package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps use case errors to HTTP status codes. Order matters:
// ErrAssignmentAlreadyResolved wraps ErrInvalidAssignmentStatus and
// ErrOrderUnassignable wraps the roster errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrOrderUnassignable),
		errors.Is(err, services.ErrInsufficientCouriers),
		errors.Is(err, ports.ErrNoCourierAvailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, commands.ErrAssignmentNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, assignment.ErrAssignmentNotOwned):
		return http.StatusForbidden
	case errors.Is(err, assignment.ErrAssignmentExpired):
		return http.StatusGone
	case errors.Is(err, assignment.ErrInvalidAssignmentStatus),
		errors.Is(err, services.ErrOrderNotDispatchable),
		errors.Is(err, ports.ErrPendingAssignmentExists):
		return http.StatusConflict
	case errors.Is(err, commands.ErrDispatch):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(code)
	}
	return c.JSON(code, servers.Error{Code: int32(code), Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
