package rest

import (
	"net/http"

	"socialfeed/internal/service"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}

	token, err := s.users.Register(c.Request().Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}

	token, err := s.users.Login(c.Request().Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) currentUser(c echo.Context) error {
	user, err := s.users.GetByID(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
