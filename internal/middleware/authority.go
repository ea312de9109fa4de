package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuthority returns a middleware that permits the request iff
// the caller's authority set contains the given permission string.
// Each protected route declares exactly one required authority. It
// assumes JWTAuth ran earlier in the chain; an absent identity or a
// missing authority is rejected with 403.
func RequireAuthority(authority string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CallerIdentity(c)
			if !ok || !id.HasAuthority(authority) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
