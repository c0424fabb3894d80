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
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	googleRevokeURL   = "https://oauth2.googleapis.com/revoke"
)

// googleProvider adapts the Google OAuth2 endpoints to the OAuthProvider contract.
type googleProvider struct {
	clientID     string
	clientSecret string
	redirectURI  string

	authURL     string
	tokenURL    string
	userInfoURL string
	revokeURL   string

	client *http.Client
}

// NewGoogle creates the Google adapter from the registered client credentials.
func NewGoogle(cfg *config.OAuthClientConfig) service.OAuthProvider {
	return &googleProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		authURL:      googleAuthURL,
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
		revokeURL:    googleRevokeURL,
		client:       newHTTPClient(),
	}
}

// Type returns the provider this adapter serves.
func (p *googleProvider) Type() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// AuthorizationURL builds the consent-page URL carrying the given state value.
func (p *googleProvider) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "email profile")
	params.Set("state", state)

	return p.authURL + "?" + params.Encode()
}

// ExchangeCodeForToken exchanges an authorization code for an access token.
func (p *googleProvider) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", p.redirectURI)

	return exchangeCode(ctx, p.client, p.tokenURL, form)
}

// FetchUserInfo retrieves user information and normalizes the flat Google response.
func (p *googleProvider) FetchUserInfo(ctx context.Context, accessToken string) (*service.ProviderProfile, error) {
	body, err := fetchUserInfo(ctx, p.client, p.userInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	var googleUser struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, errors.Wrap(domainerrors.ErrProviderUserInfoFailed, "failed to decode user info response")
	}
	if googleUser.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderEmailMissing, "google user info carried no email")
	}

	return &service.ProviderProfile{
		Email:    googleUser.Email,
		Name:     googleUser.Name,
		ID:       googleUser.Sub,
		Provider: entity.ProviderTypeGoogle,
	}, nil
}

// Revoke invalidates the access token through Google's revocation endpoint.
func (p *googleProvider) Revoke(ctx context.Context, accessToken string) error {
	revokeURL := p.revokeURL + "?token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, revokeURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create revoke request")
	}

	resp, err := p.client.Do(req)

	return checkRevokeResponse(resp, err)
}
