package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mood-planner.com/mood-planner/internal/auth"
)

const userIDKey = "user_id"

// Auth validates the bearer token and stores the caller's user id on
// the request context.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid Authorization header")
			}

			userID, err := auth.ParseToken(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's id, or 0 outside an
// authenticated route.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}
