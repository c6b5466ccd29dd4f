package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDContextKey = "auth.user_id"

// requireAuth extracts and verifies the bearer credential and stores the
// caller's user id on the request context. Missing or invalid credentials
// halt the pipeline with 401.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		}

		userID, err := s.tokens.ParseToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func callerID(c echo.Context) int64 {
	id, _ := c.Get(userIDContextKey).(int64)
	return id
}
