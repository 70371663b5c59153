package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-blog-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject into the request context under "user_id" as a
// uint64. The provided secret must match the one used when issuing tokens.
//
// The gate is pure verification: it never touches the database, so it adds no
// store round-trip to protected requests. A request without an Authorization
// header is rejected before the token is even parsed, and every failure kind
// (missing, expired, forged, malformed) produces the same 401 body.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// Expired vs. tampered vs. garbage is intentionally not
				// leaked to the client.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			c.Set("user_id", uid)
			return next(c)
		}
	}
}
