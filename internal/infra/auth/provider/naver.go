package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"speakit/config"
	"speakit/internal/domain/entity"
	domainerrors "speakit/internal/domain/errors"
	"speakit/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	naverAuthURL     = "https://nid.naver.com/oauth2.0/authorize"
	naverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// naverProvider adapts the Naver OAuth2 endpoints to the OAuthProvider contract.
type naverProvider struct {
	clientID     string
	clientSecret string
	redirectURI  string

	authURL     string
	tokenURL    string
	userInfoURL string

	client *http.Client
}

// NewNaver creates the Naver adapter from the registered client credentials.
func NewNaver(cfg *config.OAuthClientConfig) service.OAuthProvider {
	return &naverProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		authURL:      naverAuthURL,
		tokenURL:     naverTokenURL,
		userInfoURL:  naverUserInfoURL,
		client:       newHTTPClient(),
	}
}

// Type returns the provider this adapter serves.
func (p *naverProvider) Type() entity.ProviderType {
	return entity.ProviderTypeNaver
}

// AuthorizationURL builds the consent-page URL carrying the given state value.
func (p *naverProvider) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)

	return p.authURL + "?" + params.Encode()
}

// ExchangeCodeForToken exchanges an authorization code for an access token.
func (p *naverProvider) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")

	return exchangeCode(ctx, p.client, p.tokenURL, form)
}

// FetchUserInfo retrieves user information and unwraps Naver's nested
// "response" object.
func (p *naverProvider) FetchUserInfo(ctx context.Context, accessToken string) (*service.ProviderProfile, error) {
	body, err := fetchUserInfo(ctx, p.client, p.userInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var naverUser struct {
		Response struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &naverUser); err != nil {
		return nil, errors.Wrap(domainerrors.ErrProviderUserInfoFailed, "failed to decode user info response")
	}
	if naverUser.Response.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderEmailMissing, "naver user info carried no email")
	}

	return &service.ProviderProfile{
		Email:    naverUser.Response.Email,
		Name:     naverUser.Response.Name,
		ID:       naverUser.Response.ID,
		Provider: entity.ProviderTypeNaver,
	}, nil
}

// Revoke deletes the token grant through Naver's token endpoint.
func (p *naverProvider) Revoke(ctx context.Context, accessToken string) error {
	params := url.Values{}
	params.Set("grant_type", "delete")
	params.Set("client_id", p.clientID)
	params.Set("client_secret", p.clientSecret)
	params.Set("access_token", accessToken)
	params.Set("service_provider", "NAVER")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.tokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create revoke request")
	}

	resp, err := p.client.Do(req)

	return checkRevokeResponse(resp, err)
}
