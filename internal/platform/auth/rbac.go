package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns middleware that rejects requests whose token does not
// carry the given role. Admins pass every role check.
func RequireRole(role string) echo.MiddlewareFunc {
	message := strings.ToUpper(role[:1]) + role[1:] + " access required"
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			have := RoleFromContext(c.Request().Context())
			if have == role || have == "admin" {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, message)
		}
	}
}
