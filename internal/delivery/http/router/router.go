// Package router contains routing setup for the HTTP delivery.
package router

import (
	"healthvault/internal/delivery/http/middleware"
	"healthvault/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	e.POST("/register", r.authHandler.RegisterUser)
	e.POST("/token", r.authHandler.Login)

	// Routes that require a bearer token
	authed := e.Group("", r.authMiddleware.Authenticate)
	{
		authed.GET("/me", r.profileHandler.Me)
		authed.PUT("/profile", r.profileHandler.UpdateProfile)
	}
}
