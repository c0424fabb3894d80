// Package constants holds fixed values shared across layers.
package constants

const (
	// SocialLoginPassword is the sentinel stored in the password column for
	// accounts that authenticate exclusively through a social provider.
	SocialLoginPassword = "SOCIAL_LOGIN"

	// AccessTokenCookie carries the access token on every request.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie carries the refresh token.
	RefreshTokenCookie = "refreshToken"
	// LegacySessionCookie is cleared on logout for clients that still hold one.
	LegacySessionCookie = "JSESSIONID"

	// AuthRequestCookie holds the serialized in-flight authorization state.
	AuthRequestCookie = "oauth2_auth_request"
	// RedirectURICookie holds the post-login redirect target.
	RedirectURICookie = "redirect_uri"

	// SocialCallbackPathPrefix is the path prefix provider callbacks arrive on.
	// Requests under it are exempt from the session gate.
	SocialCallbackPathPrefix = "/login/oauth2/callback"
)

const (
	// PubSubProviderLocal selects the local HTTP push simulator.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// EnvDevelop marks a local development deployment. The event worker skips
	// push JWT verification in this environment.
	EnvDevelop = "develop"
)
