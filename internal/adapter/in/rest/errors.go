package rest

import (
	"errors"
	"net/http"

	"socialfeed/internal/service"
	"socialfeed/pkg/logger"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors onto the HTTP surface. Validation and
// like-guard failures are 400, missing resources 404, ownership and
// credential failures 401. Anything unexpected is logged and surfaces as an
// opaque 500 so internal error text never reaches a client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadyLiked):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Post already liked"})

	case errors.Is(err, service.ErrNotLiked):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Post has not yet been liked"})

	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email already registered"})

	case errors.Is(err, service.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})

	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authorized"})

	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})

	default:
		log := logger.FromContext(c.Request().Context())
		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
