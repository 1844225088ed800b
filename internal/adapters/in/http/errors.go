package http

import (
	"errors"
	"net/http"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/generated/servers"
	"fitcourse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrRatingIsRequired),
		errors.Is(err, feedback.ErrCommentIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrContentNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrDayIsLocked):
		return http.StatusForbidden
	case errors.Is(err, user.ErrCourseIsComplete),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Server-side failures are logged and
// their details are not exposed.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(code)
	}
	return c.JSON(code, servers.Error{Code: code, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
