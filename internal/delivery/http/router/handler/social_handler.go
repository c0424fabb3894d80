package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"speakit/config"
	deliverycontext "speakit/internal/delivery/context"
	"speakit/internal/delivery/http/oauthstate"
	"speakit/internal/delivery/http/response"
	"speakit/internal/domain/constants"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/service"
	"speakit/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SocialHandler holds dependencies for the social login flow.
type SocialHandler struct {
	uc         usecase.SocialUsecase
	registry   service.ProviderRegistry
	stateStore *oauthstate.Store
	cookies    authCookies
	frontend   *config.FrontendConfig
	logger     *slog.Logger
}

// NewSocialHandler is the constructor for SocialHandler, injected by Fx.
func NewSocialHandler(
	uc usecase.SocialUsecase,
	registry service.ProviderRegistry,
	stateStore *oauthstate.Store,
	tokenService service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) *SocialHandler {
	handler := &SocialHandler{
		uc:         uc,
		registry:   registry,
		stateStore: stateStore,
		cookies:    newAuthCookies(cfg, tokenService),
		logger:     logger,
	}
	if cfg != nil {
		handler.frontend = cfg.Frontend
	}

	return handler
}

// Authorize initiates the provider login: it stores the in-flight state in a
// cookie and redirects the browser to the provider's consent page.
func (h *SocialHandler) Authorize(c echo.Context) error {
	providerName := entity.ProviderType(c.Param("provider"))

	adapter, ok := h.registry.Lookup(providerName)
	if !ok {
		return response.BadRequest(c, "UNSUPPORTED_PROVIDER", "지원되지 않는 소셜 로그인입니다.")
	}

	nonce := uuid.New().String()
	if err := h.stateStore.Save(c.Response(), &oauthstate.AuthorizationState{
		Provider: providerName.String(),
		Nonce:    nonce,
	}, c.QueryParam("redirect_uri")); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, adapter.AuthorizationURL(nonce))
}

// Callback completes the provider login. The state cookie is consumed no
// matter how the flow ends, so a stale attempt can never be replayed through
// this server.
func (h *SocialHandler) Callback(c echo.Context) error {
	providerName := entity.ProviderType(c.Param("provider"))
	redirectTarget := h.stateStore.RedirectURI(c.Request())
	state := h.stateStore.Consume(c.Request(), c.Response())

	// User-cancelled consent arrives as an error parameter. The code exchange
	// is never attempted in that case.
	if providerErr := c.QueryParam("error"); providerErr != "" {
		h.log(c).Info("Provider reported callback error, redirecting to sign-in",
			slog.String("provider", providerName.String()),
			slog.String("error", providerErr),
		)

		return c.Redirect(http.StatusFound, h.signInURL(providerErr))
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, h.signInURL("missing_code"))
	}

	// A missing or corrupt state cookie is rejected the same as a wrong nonce.
	if state == nil || state.Nonce == "" || c.QueryParam("state") != state.Nonce {
		h.log(c).Warn("Authorization state mismatch, rejecting callback",
			slog.String("provider", providerName.String()),
			slog.Bool("state_present", state != nil),
		)

		return c.Redirect(http.StatusFound, h.signInURL("state_mismatch"))
	}

	output, err := h.uc.ProcessSocialLogin(c.Request().Context(), &usecase.SocialLoginInput{
		Provider: providerName,
		Code:     code,
	})
	if err != nil {
		h.log(c).Error("Social login failed",
			slog.String("provider", providerName.String()),
			slog.Any("error", err),
		)

		return c.Redirect(http.StatusFound, h.signInURL("login_failed"))
	}

	h.cookies.set(c, output.AccessToken, output.RefreshToken)

	if redirectTarget == "" {
		redirectTarget = h.defaultRedirectURL()
	}

	return c.Redirect(http.StatusFound, redirectTarget)
}

// Disconnect revokes the provider grant and deletes the account. The access
// token comes from the cookie the session gate also reads.
func (h *SocialHandler) Disconnect(c echo.Context) error {
	cookie, err := c.Cookie(constants.AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return response.Unauthorized(c, "UNAUTHENTICATED", "로그인이 필요합니다.")
	}

	if err := h.uc.DisconnectSocialAccount(c.Request().Context(), cookie.Value); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.clear(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Social account disconnected"}, "Account disconnected successfully")
}

func (h *SocialHandler) signInURL(reason string) string {
	base := "/"
	if h.frontend != nil && h.frontend.SignInURL != "" {
		base = h.frontend.SignInURL
	}
	if reason == "" {
		return base
	}

	separator := "?"
	if parsed, err := url.Parse(base); err == nil && parsed.RawQuery != "" {
		separator = "&"
	}

	return base + separator + "error=" + url.QueryEscape(reason)
}

func (h *SocialHandler) defaultRedirectURL() string {
	if h.frontend != nil && h.frontend.DefaultRedirectURL != "" {
		return h.frontend.DefaultRedirectURL
	}

	return "/"
}

func (h *SocialHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}
