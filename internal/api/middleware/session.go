package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const sessionKey = "session"

// TokenParser verifies a bearer token and returns the session it carries.
type TokenParser interface {
	ParseToken(raw string) (domain.Session, error)
}

// Session resolves the caller of every request. A request without an
// Authorization header gets the anonymous session; a header that is present
// must carry a valid bearer token.
func Session(tokens TokenParser, anonymous domain.Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				SetSession(c, anonymous)
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			sess, err := tokens.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}

// SetSession stores s on the request context.
func SetSession(c echo.Context, s domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the session stored by Session.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(sessionKey).(domain.Session)
	return s, ok
}
