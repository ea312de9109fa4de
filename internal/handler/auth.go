package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemetrics/movie-metrics/internal/service"
)

// AuthHandler serves the public registration and login endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{Auth: auth} }

// Register handles POST /auth/register. A fresh account always gets
// the default USER role; the response carries the signed token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token, _, err := h.Auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: &token.Token})
}

// Login handles POST /auth/login. An unknown email is a 404; a wrong
// password is a 200 with a null token and a message, per the login
// contract.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token, message, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	if token == nil {
		return c.JSON(http.StatusOK, authResponse{Message: &message})
	}
	return c.JSON(http.StatusOK, authResponse{Token: &token.Token})
}
