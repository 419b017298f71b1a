// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"healthvault/internal/delivery/http/response"
	"healthvault/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for registration and login handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" query:"email" form:"email" validate:"required,email"`
	Password string `json:"password" query:"password" form:"password" validate:"required"`
	FullName string `json:"full_name" query:"full_name" form:"full_name"`
	Age      *int   `json:"age" query:"age" form:"age"`
	Gender   string `json:"gender" query:"gender" form:"gender"`
}

type registerResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
}

type tokenRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type tokenUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	User        tokenUser `json:"user"`
}

// RegisterUser handles the user registration request. Credentials arrive
// either as query parameters or in the request body.
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var req registerRequest

	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, &req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if req.Email == "" && req.Password == "" {
		if err := binder.BindQueryParams(c, &req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
		}
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, registerResponse{
		Message: "User registered successfully",
		UserID:  output.User.ID,
		Email:   output.User.Email,
	})
}

// Login handles the OAuth2-style password grant. The form's username field
// carries the email.
func (h *AuthHandler) Login(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   output.ExpiresIn,
		User: tokenUser{
			ID:       output.User.ID,
			Email:    output.User.Email,
			FullName: output.User.FullName,
		},
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
