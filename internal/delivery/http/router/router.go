// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"speakit/internal/delivery/http/middleware"
	"speakit/internal/delivery/http/router/handler"
	"speakit/internal/domain/constants"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler   *handler.UserHandler
	SocialHandler *handler.SocialHandler
	SessionGate   *middleware.SessionGate
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler   *handler.UserHandler
	socialHandler *handler.SocialHandler
	sessionGate   *middleware.SessionGate
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:   params.UserHandler,
		socialHandler: params.SocialHandler,
		sessionGate:   params.SessionGate,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/healthz", handler.HealthCheck)

	// The gate resolves the principal for every route; it rejects nothing by
	// itself. Provider callback paths are exempted inside the gate.
	e.Use(r.sessionGate.Authenticate)

	users := e.Group("/api/users")
	{
		users.POST("", r.userHandler.SignUp)
		users.POST("/login", r.userHandler.SignIn)
		users.GET("/login-status", r.userHandler.LoginStatus)

		authed := users.Group("", r.sessionGate.RequireAuthenticated)
		{
			authed.GET("/profile", r.userHandler.GetProfile)
			authed.PUT("/profile", r.userHandler.UpdateProfile)
			authed.POST("/logout", r.userHandler.Logout)
			authed.DELETE("", r.userHandler.DeleteAccount)
		}

		// Disconnect authenticates through its own token read, the use case
		// validates the token it revokes the account for.
		users.DELETE("/social", r.socialHandler.Disconnect)
	}

	// Social login flow
	e.GET("/oauth2/authorize/:provider", r.socialHandler.Authorize)
	e.GET(constants.SocialCallbackPathPrefix+"/:provider", r.socialHandler.Callback)
}
