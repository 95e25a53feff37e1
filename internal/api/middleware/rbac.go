package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// RBAC only lets sessions with one of the given roles through.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, _ := SessionFrom(c)
			if _, ok := allowed[s.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
