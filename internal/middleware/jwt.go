package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/travel-booking/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the token's subject into the request context.  The provided
// secret must match the one used when issuing tokens.  Handlers behind
// this middleware read the authenticated user via `c.Get("user_id")`.
//
// Every rejection (missing header, malformed token, bad signature, expired
// token) produces the same 401 body so clients cannot probe which case
// they hit.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("user_id", uid)
			return next(c)
		}
	}
}
