package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// errorResponse is the error envelope of every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders
// {"error": "<message>"}. Unexpected errors are logged and hidden.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrComplaintNotFound):
		return http.StatusNotFound, "complaint not found"
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUnknownRole):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNothingToSubmit):
		return http.StatusConflict, "no status update in progress"
	case errors.Is(err, domain.ErrNoSelection):
		return http.StatusConflict, "no complaint selected"
	case errors.Is(err, domain.ErrDuplicateComplaint):
		return http.StatusConflict, "complaint already exists"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "complaints backend unavailable"
	case errors.Is(err, domain.ErrRejected):
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return http.StatusBadGateway, "complaints backend rejected the request: " + apiErr.Message
		}
		return http.StatusBadGateway, "complaints backend rejected the request"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
