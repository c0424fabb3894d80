package provider

import (
	"log/slog"

	"speakit/config"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/service"
)

// registry is the startup-built map from provider name to adapter.
type registry struct {
	providers map[entity.ProviderType]service.OAuthProvider
}

// NewRegistry builds the provider registry from configuration. Providers
// without configured credentials are left out and log a notice, so a
// deployment can enable any subset.
func NewRegistry(cfg *config.Config, logger *slog.Logger) service.ProviderRegistry {
	providers := make(map[entity.ProviderType]service.OAuthProvider)

	if cfg.OAuth != nil {
		if cfg.OAuth.Google != nil {
			providers[entity.ProviderTypeGoogle] = NewGoogle(cfg.OAuth.Google)
		}
		if cfg.OAuth.Naver != nil {
			providers[entity.ProviderTypeNaver] = NewNaver(cfg.OAuth.Naver)
		}
		if cfg.OAuth.Kakao != nil {
			providers[entity.ProviderTypeKakao] = NewKakao(cfg.OAuth.Kakao)
		}
	}

	if len(providers) == 0 {
		logger.Warn("No OAuth providers configured, social login is disabled")
	}
	for name := range providers {
		logger.Info("OAuth provider registered", slog.String("provider", name.String()))
	}

	return &registry{providers: providers}
}

// Lookup returns the adapter registered under the given name.
func (r *registry) Lookup(name entity.ProviderType) (service.OAuthProvider, bool) {
	adapter, ok := r.providers[name]

	return adapter, ok
}
