package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "speakit/internal/delivery/context"
	"speakit/internal/delivery/http/response"
	"speakit/internal/domain/constants"
	"speakit/internal/domain/repository"
	"speakit/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which the gate publishes the authenticated principal.
const (
	ContextKeyUserEmail = "userEmail"
	ContextKeyUserRole  = "userRole"
)

// SessionGate resolves the per-request principal from the access-token cookie.
// It never rejects a request itself: a missing, invalid or unresolvable token
// leaves the request unauthenticated and downstream authorization rules
// produce the user-visible rejection.
type SessionGate struct {
	tokenService service.TokenService
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

// NewSessionGate is the constructor for SessionGate.
func NewSessionGate(tokenService service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *SessionGate {
	return &SessionGate{
		tokenService: tokenService,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Authenticate extracts and validates the access-token cookie, resolving the
// principal on success. Provider callback paths skip the gate entirely since
// no token is expected there.
func (g *SessionGate) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, constants.SocialCallbackPathPrefix) {
			return next(c)
		}

		cookie, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			// No token is not an error, the request simply stays unauthenticated.
			return next(c)
		}

		tokenString := cookie.Value
		if !g.tokenService.Validate(tokenString) {
			g.log(c).Debug("Access token failed validation, request proceeds unauthenticated",
				slog.String("path", c.Request().URL.Path),
			)

			return next(c)
		}

		subject, err := g.tokenService.Subject(tokenString)
		if err != nil {
			g.log(c).Warn("Failed to extract subject from validated token",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)

			return next(c)
		}

		// Fail safe: a lookup failure must not error the whole pipeline.
		user, err := g.userRepo.FindByEmail(c.Request().Context(), subject)
		if err != nil {
			g.log(c).Warn("Principal lookup failed, request proceeds unauthenticated",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)

			return next(c)
		}

		c.Set(ContextKeyUserEmail, user.Email)
		c.Set(ContextKeyUserRole, user.Role.String())

		return next(c)
	}
}

// RequireAuthenticated rejects requests that reached a protected route
// without a resolved principal. It must run after Authenticate.
func (g *SessionGate) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if PrincipalEmail(c) == "" {
			return response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "로그인이 필요합니다.", "")
		}

		return next(c)
	}
}

// PrincipalEmail returns the authenticated principal's email, or empty when
// the request is unauthenticated.
func PrincipalEmail(c echo.Context) string {
	if email, ok := c.Get(ContextKeyUserEmail).(string); ok {
		return email
	}

	return ""
}

func (g *SessionGate) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), g.logger)
}
