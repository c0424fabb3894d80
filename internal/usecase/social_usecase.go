package usecase

import (
	"context"

	"speakit/internal/domain/entity"
)

// SocialLoginInput carries the provider callback data needed to complete a login.
type SocialLoginInput struct {
	Provider entity.ProviderType
	Code     string
}

// SocialUsecase defines the interface for social login business operations.
type SocialUsecase interface {
	// ProcessSocialLogin runs code exchange, user-info fetch and identity
	// reconciliation, then issues tokens for the resulting account.
	ProcessSocialLogin(ctx context.Context, input *SocialLoginInput) (*SignInOutput, error)

	// DisconnectSocialAccount revokes the provider-side grant and deletes the
	// local account. A failed revocation aborts the deletion.
	DisconnectSocialAccount(ctx context.Context, accessToken string) error
}
