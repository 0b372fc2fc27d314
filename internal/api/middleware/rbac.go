package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// RBAC restricts a route to the given roles. It relies on Auth having stored
// the token's role in the request context; a request without a role claim is
// rejected the same way as one with the wrong role.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get("role").(string); allowed[role] {
				return next(c)
			}
			return domain.ErrForbidden
		}
	}
}
