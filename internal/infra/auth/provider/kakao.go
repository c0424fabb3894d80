package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"speakit/config"
	"speakit/internal/domain/entity"
	domainerrors "speakit/internal/domain/errors"
	"speakit/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	kakaoAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"
	kakaoUnlinkURL   = "https://kapi.kakao.com/v1/user/unlink"

	// kakaoFallbackName is used when the account exposes no nickname.
	kakaoFallbackName = "unknown"
)

// kakaoProvider adapts the Kakao OAuth2 endpoints to the OAuthProvider contract.
type kakaoProvider struct {
	clientID     string
	clientSecret string
	redirectURI  string

	authURL     string
	tokenURL    string
	userInfoURL string
	unlinkURL   string

	client *http.Client
}

// NewKakao creates the Kakao adapter from the registered client credentials.
func NewKakao(cfg *config.OAuthClientConfig) service.OAuthProvider {
	return &kakaoProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		authURL:      kakaoAuthURL,
		tokenURL:     kakaoTokenURL,
		userInfoURL:  kakaoUserInfoURL,
		unlinkURL:    kakaoUnlinkURL,
		client:       newHTTPClient(),
	}
}

// Type returns the provider this adapter serves.
func (p *kakaoProvider) Type() entity.ProviderType {
	return entity.ProviderTypeKakao
}

// AuthorizationURL builds the consent-page URL carrying the given state value.
func (p *kakaoProvider) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)

	return p.authURL + "?" + params.Encode()
}

// ExchangeCodeForToken exchanges an authorization code for an access token.
func (p *kakaoProvider) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", p.redirectURI)

	return exchangeCode(ctx, p.client, p.tokenURL, form)
}

// FetchUserInfo retrieves user information. Kakao reports a numeric account
// id at the top level and nests the email and nickname under sub-objects.
func (p *kakaoProvider) FetchUserInfo(ctx context.Context, accessToken string) (*service.ProviderProfile, error) {
	body, err := fetchUserInfo(ctx, p.client, p.userInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var kakaoUser struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email string `json:"email"`
		} `json:"kakao_account"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(body, &kakaoUser); err != nil {
		return nil, errors.Wrap(domainerrors.ErrProviderUserInfoFailed, "failed to decode user info response")
	}
	if kakaoUser.KakaoAccount.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderEmailMissing, "kakao user info carried no email")
	}

	name := kakaoUser.Properties.Nickname
	if name == "" {
		name = kakaoFallbackName
	}

	return &service.ProviderProfile{
		Email:    kakaoUser.KakaoAccount.Email,
		Name:     name,
		ID:       strconv.FormatInt(kakaoUser.ID, 10),
		Provider: entity.ProviderTypeKakao,
	}, nil
}

// Revoke unlinks the app from the Kakao account.
func (p *kakaoProvider) Revoke(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.unlinkURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create revoke request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)

	return checkRevokeResponse(resp, err)
}
