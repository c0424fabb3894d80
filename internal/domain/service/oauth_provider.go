package service

import (
	"context"

	"speakit/internal/domain/entity"
)

// ProviderProfile is the normalized user-info triple every adapter produces,
// regardless of the provider's native response shape.
type ProviderProfile struct {
	Email    string              // User's email address
	Name     string              // User's display name
	ID       string              // Provider's stable subject identifier
	Provider entity.ProviderType // Which provider the profile came from
}

// OAuthProvider defines the per-provider adapter for the authorization-code flow.
type OAuthProvider interface {
	// Type returns the provider this adapter serves.
	Type() entity.ProviderType

	// AuthorizationURL builds the consent-page URL carrying the given state value.
	AuthorizationURL(state string) string

	// ExchangeCodeForToken trades an authorization code for a provider access token.
	ExchangeCodeForToken(ctx context.Context, code string) (string, error)

	// FetchUserInfo retrieves and normalizes the provider's user-info response.
	FetchUserInfo(ctx context.Context, accessToken string) (*ProviderProfile, error)

	// Revoke invalidates the provider access token on the provider side.
	Revoke(ctx context.Context, accessToken string) error
}

// ProviderRegistry maps provider names to their adapters. The registry is
// built once at startup from configuration.
type ProviderRegistry interface {
	// Lookup returns the adapter registered under the given name.
	Lookup(name entity.ProviderType) (OAuthProvider, bool)
}
