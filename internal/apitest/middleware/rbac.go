package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/pawshop/storefront/internal/core/domain"
)

// RBAC admits callers whose role, as set by Auth, is one of roles. A request
// that never went through Auth has no role and is treated as anonymous.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(KeyRole).(string)
			if !ok || role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}
			if !slices.Contains(roles, domain.Role(role)) {
				return echo.NewHTTPError(http.StatusForbidden, "This action is unauthorized.")
			}
			return next(c)
		}
	}
}
