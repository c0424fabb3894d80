// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"speakit/config"
	"speakit/internal/delivery/http/middleware"
	"speakit/internal/delivery/http/response"
	"speakit/internal/domain/service"
	"speakit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc      usecase.UserUsecase
	cookies authCookies
	logger  *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, tokenService service.TokenService, cfg *config.Config, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:      uc,
		cookies: newAuthCookies(cfg, tokenService),
		logger:  logger,
	}
}

type signUpRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	CurrentPassword string  `json:"currentPassword" validate:"required"`
	NewUsername     *string `json:"username,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

type deleteAccountRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

type accountSummaryResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func summaryResponse(summary *usecase.AccountSummary) accountSummaryResponse {
	return accountSummaryResponse{
		ID:        summary.ID.String(),
		Username:  summary.Username,
		Email:     summary.Email,
		CreatedAt: summary.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

type profileResponse struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RegistrationDate string `json:"registrationDate"`
	Provider         string `json:"provider,omitempty"`
}

func profileResponseFrom(profile *usecase.ProfileOutput) profileResponse {
	return profileResponse{
		Username:         profile.Username,
		Email:            profile.Email,
		Password:         profile.Password,
		RegistrationDate: profile.RegistrationDate,
		Provider:         profile.Provider,
	}
}

// SignUp handles the registration request.
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.uc.SignUp(c.Request().Context(), &usecase.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, summaryResponse(summary), "User registered successfully")
}

// SignIn handles the password login request and delivers both tokens as cookies.
func (h *UserHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.SignIn(c.Request().Context(), &usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.set(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, summaryResponse(output.Summary), "Login successful")
}

// LoginStatus reports whether the current request carries a valid session.
func (h *UserHandler) LoginStatus(c echo.Context) error {
	email := middleware.PrincipalEmail(c)

	return response.Success(c, http.StatusOK, map[string]any{
		"loggedIn": email != "",
		"email":    email,
	}, "")
}

// GetProfile returns the authenticated account's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.uc.GetProfile(c.Request().Context(), middleware.PrincipalEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profileResponseFrom(profile), "Profile retrieved successfully")
}

// UpdateProfile applies an optional username and/or password change.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		Email:           middleware.PrincipalEmail(c),
		CurrentPassword: req.CurrentPassword,
		NewUsername:     req.NewUsername,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profileResponseFrom(profile), "Profile updated successfully")
}

// Logout clears the stored refresh token and expires the auth cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), middleware.PrincipalEmail(c)); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.clear(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// DeleteAccount verifies the current password and removes the account.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid delete input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), &usecase.DeleteAccountInput{
		Email:           middleware.PrincipalEmail(c),
		CurrentPassword: req.CurrentPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.clear(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
