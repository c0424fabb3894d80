package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"speakit/config"
	"speakit/internal/delivery/http/oauthstate"
	"speakit/internal/domain/constants"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/service"
	"speakit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name entity.ProviderType
}

func (p *stubProvider) Type() entity.ProviderType {
	return p.name
}

func (p *stubProvider) AuthorizationURL(state string) string {
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

func (p *stubProvider) ExchangeCodeForToken(_ context.Context, _ string) (string, error) {
	return "", errors.New("exchange must not be reached from the handler")
}

func (p *stubProvider) FetchUserInfo(_ context.Context, _ string) (*service.ProviderProfile, error) {
	return nil, errors.New("userinfo must not be reached from the handler")
}

func (p *stubProvider) Revoke(_ context.Context, _ string) error {
	return nil
}

type stubRegistry struct {
	providers map[entity.ProviderType]service.OAuthProvider
}

func (r *stubRegistry) Lookup(name entity.ProviderType) (service.OAuthProvider, bool) {
	adapter, ok := r.providers[name]

	return adapter, ok
}

type fakeSocialUsecase struct {
	loginCalls int
	lastInput  *usecase.SocialLoginInput
	output     *usecase.SignInOutput
	err        error
}

func (f *fakeSocialUsecase) ProcessSocialLogin(_ context.Context, input *usecase.SocialLoginInput) (*usecase.SignInOutput, error) {
	f.loginCalls++
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}

	return f.output, nil
}

func (f *fakeSocialUsecase) DisconnectSocialAccount(_ context.Context, _ string) error {
	return nil
}

type staticTokenService struct{}

func (staticTokenService) Issue(_ service.TokenKind, _ string) (string, error) {
	return "issued-token", nil
}

func (staticTokenService) Validate(_ string) bool {
	return true
}

func (staticTokenService) Subject(_ string) (string, error) {
	return "", nil
}

func (staticTokenService) Lifetime(kind service.TokenKind) time.Duration {
	if kind == service.TokenKindRefresh {
		return 14 * 24 * time.Hour
	}

	return 15 * time.Minute
}

func socialTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cookie = &config.CookieConfig{Secure: true}
	cfg.Frontend = &config.FrontendConfig{
		SignInURL:          "https://app.example/signin",
		DefaultRedirectURL: "https://app.example/home",
	}

	return cfg
}

func newTestSocialHandler(uc usecase.SocialUsecase) *SocialHandler {
	cfg := socialTestConfig()
	registry := &stubRegistry{providers: map[entity.ProviderType]service.OAuthProvider{
		entity.ProviderTypeGoogle: &stubProvider{name: entity.ProviderTypeGoogle},
	}}

	return NewSocialHandler(
		uc,
		registry,
		oauthstate.NewStore(cfg),
		staticTokenService{},
		cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func callbackContext(t *testing.T, target string, cookies []*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		if cookie.MaxAge >= 0 && cookie.Value != "" {
			req.AddCookie(cookie)
		}
	}
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	return c, rec
}

// startAuthorize runs the authorize leg and returns the issued state cookies
// plus the nonce embedded in the consent redirect.
func startAuthorize(t *testing.T, h *SocialHandler, redirectURI string) ([]*http.Cookie, string) {
	t.Helper()

	target := "/oauth2/authorize/google"
	if redirectURI != "" {
		target += "?redirect_uri=" + url.QueryEscape(redirectURI)
	}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	require.NoError(t, h.Authorize(c))
	require.Equal(t, http.StatusFound, rec.Code)

	consentURL, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	nonce := consentURL.Query().Get("state")
	require.NotEmpty(t, nonce)

	return rec.Result().Cookies(), nonce
}

func locationError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)

	return loc.Query().Get("error")
}

func tokenCookiesSet(rec *httptest.ResponseRecorder) bool {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == constants.AccessTokenCookie && cookie.Value != "" {
			return true
		}
	}

	return false
}

func TestCallback_ProviderErrorSkipsCodeExchange(t *testing.T) {
	uc := &fakeSocialUsecase{}
	h := newTestSocialHandler(uc)
	cookies, nonce := startAuthorize(t, h, "")

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?error=access_denied&state="+nonce, cookies)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "access_denied", locationError(t, rec))
	assert.Zero(t, uc.loginCalls)
	assert.False(t, tokenCookiesSet(rec))
}

func TestCallback_MissingStateCookieRejected(t *testing.T) {
	uc := &fakeSocialUsecase{}
	h := newTestSocialHandler(uc)

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?code=attacker-code&state=whatever", nil)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "state_mismatch", locationError(t, rec))
	assert.Zero(t, uc.loginCalls)
	assert.False(t, tokenCookiesSet(rec))
}

func TestCallback_CorruptStateCookieRejected(t *testing.T) {
	uc := &fakeSocialUsecase{}
	h := newTestSocialHandler(uc)
	corrupt := []*http.Cookie{{Name: constants.AuthRequestCookie, Value: "not-base64-json", MaxAge: 180}}

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?code=some-code&state=whatever", corrupt)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, "state_mismatch", locationError(t, rec))
	assert.Zero(t, uc.loginCalls)
}

func TestCallback_NonceMismatchRejected(t *testing.T) {
	uc := &fakeSocialUsecase{}
	h := newTestSocialHandler(uc)
	cookies, _ := startAuthorize(t, h, "")

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?code=some-code&state=some-other-nonce", cookies)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, "state_mismatch", locationError(t, rec))
	assert.Zero(t, uc.loginCalls)
	assert.False(t, tokenCookiesSet(rec))
}

func TestCallback_MissingCodeRejected(t *testing.T) {
	uc := &fakeSocialUsecase{}
	h := newTestSocialHandler(uc)
	cookies, nonce := startAuthorize(t, h, "")

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?state="+nonce, cookies)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, "missing_code", locationError(t, rec))
	assert.Zero(t, uc.loginCalls)
}

func TestCallback_ValidStateCompletesLogin(t *testing.T) {
	uc := &fakeSocialUsecase{output: &usecase.SignInOutput{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}}
	h := newTestSocialHandler(uc)
	cookies, nonce := startAuthorize(t, h, "https://app.example/after-login")

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?code=good-code&state="+nonce, cookies)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.example/after-login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, uc.loginCalls)
	assert.Equal(t, entity.ProviderTypeGoogle, uc.lastInput.Provider)
	assert.Equal(t, "good-code", uc.lastInput.Code)
	assert.True(t, tokenCookiesSet(rec))

	// The state cookie is single-use: the callback expires it.
	var stateExpired bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == constants.AuthRequestCookie && cookie.MaxAge < 0 {
			stateExpired = true
		}
	}
	assert.True(t, stateExpired)
}

func TestCallback_LoginFailureRedirectsToSignIn(t *testing.T) {
	uc := &fakeSocialUsecase{err: errors.New("provider unreachable")}
	h := newTestSocialHandler(uc)
	cookies, nonce := startAuthorize(t, h, "")

	c, rec := callbackContext(t,
		"/login/oauth2/callback/google?code=good-code&state="+nonce, cookies)
	require.NoError(t, h.Callback(c))

	assert.Equal(t, "login_failed", locationError(t, rec))
	assert.Equal(t, 1, uc.loginCalls)
	assert.False(t, tokenCookiesSet(rec))
}
