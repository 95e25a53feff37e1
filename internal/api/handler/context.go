package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/api/middleware"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/infrastructure/restapi"
)

// ctxSession returns the session injected by the Session middleware. A
// session without a role means the middleware did not run.
func ctxSession(c echo.Context) (domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok || s.Role == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return s, nil
}

// upstreamContext carries the caller's token to the complaints backend.
func upstreamContext(c echo.Context, s domain.Session) context.Context {
	return restapi.WithBearer(c.Request().Context(), s.Token)
}
