// Package provider contains the OAuth2 adapters for the supported social
// login providers and the registry they are selected through.
package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "speakit/internal/domain/errors"

	"github.com/pkg/errors"
)

const defaultHTTPTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// exchangeCode performs the form-encoded token request shared by every
// provider and extracts the access_token field from the response.
func exchangeCode(ctx context.Context, client *http.Client, tokenURL string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrProviderExchangeFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		return "", errors.Wrapf(domainerrors.ErrProviderExchangeFailed, "token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(domainerrors.ErrProviderExchangeFailed, "failed to decode token response")
	}
	if tokenResponse.AccessToken == "" {
		return "", errors.Wrap(domainerrors.ErrProviderExchangeFailed, "token response carried no access_token")
	}

	return tokenResponse.AccessToken, nil
}

// fetchUserInfo performs the bearer-authenticated user-info request and
// returns the raw body for provider-specific normalization.
func fetchUserInfo(ctx context.Context, client *http.Client, userInfoURL, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrProviderUserInfoFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(domainerrors.ErrProviderUserInfoFailed, "user info endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrProviderUserInfoFailed, "failed to read user info response")
	}
	if len(body) == 0 {
		return nil, errors.Wrap(domainerrors.ErrProviderUserInfoFailed, "user info response was empty")
	}

	return body, nil
}

// checkRevokeResponse maps the revocation outcome to the domain error.
func checkRevokeResponse(resp *http.Response, err error) error {
	if err != nil {
		return errors.Wrap(domainerrors.ErrProviderRevokeFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Wrapf(domainerrors.ErrProviderRevokeFailed, "revoke endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
