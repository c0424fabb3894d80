package handler

import (
	"net/http"

	"speakit/config"
	"speakit/internal/domain/constants"
	"speakit/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// authCookies writes and clears the token-bearing cookies. Max-Age always
// mirrors the configured token lifetime so cookie expiry and token expiry
// stay aligned.
type authCookies struct {
	domain       string
	secure       bool
	tokenService service.TokenService
}

func newAuthCookies(cfg *config.Config, tokenService service.TokenService) authCookies {
	cookies := authCookies{tokenService: tokenService}
	if cfg != nil && cfg.Cookie != nil {
		cookies.domain = cfg.Cookie.Domain
		cookies.secure = cfg.Cookie.Secure
	}

	return cookies
}

// set delivers both tokens as HttpOnly cookies on the response.
func (a authCookies) set(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(a.cookie(constants.AccessTokenCookie, accessToken,
		int(a.tokenService.Lifetime(service.TokenKindAccess).Seconds())))
	c.SetCookie(a.cookie(constants.RefreshTokenCookie, refreshToken,
		int(a.tokenService.Lifetime(service.TokenKindRefresh).Seconds())))
}

// clear expires the token cookies plus the legacy session cookie some
// clients still carry.
func (a authCookies) clear(c echo.Context) {
	c.SetCookie(a.cookie(constants.AccessTokenCookie, "", 0))
	c.SetCookie(a.cookie(constants.RefreshTokenCookie, "", 0))
	c.SetCookie(a.cookie(constants.LegacySessionCookie, "", 0))
}

func (a authCookies) cookie(name, value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   a.domain,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteNoneMode,
	}
	if maxAge > 0 {
		cookie.MaxAge = maxAge
	} else {
		cookie.MaxAge = -1
	}

	return cookie
}
