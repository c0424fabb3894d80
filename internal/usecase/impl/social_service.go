package impl

import (
	"context"
	"log/slog"

	deliverycontext "speakit/internal/delivery/context"
	"speakit/internal/domain/entity"
	domainerrors "speakit/internal/domain/errors"
	"speakit/internal/domain/repository"
	"speakit/internal/domain/service"
	"speakit/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// socialService implements the SocialUsecase interface.
type socialService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	registry       service.ProviderRegistry
	linker         usecase.IdentityLinker
	tokenService   service.TokenService
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// SocialServiceParams holds dependencies for socialService, injected by Fx.
type SocialServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Registry       service.ProviderRegistry
	Linker         usecase.IdentityLinker
	TokenService   service.TokenService
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewSocialService is the constructor for socialService.
func NewSocialService(params SocialServiceParams) usecase.SocialUsecase {
	return &socialService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		registry:       params.Registry,
		linker:         params.Linker,
		tokenService:   params.TokenService,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *socialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ProcessSocialLogin completes the authorization-code flow: code exchange,
// user-info fetch, identity reconciliation, then token issuance. Each network
// call runs once; a single failure fails the whole use case.
func (srv *socialService) ProcessSocialLogin(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.SignInOutput, error) {
	srv.log(ctx).Info("Processing social login", slog.String("provider", input.Provider.String()))

	adapter, ok := srv.registry.Lookup(input.Provider)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedOperation, "no adapter registered for provider %q", input.Provider)
	}

	providerToken, err := adapter.ExchangeCodeForToken(ctx, input.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange authorization code")
	}

	profile, err := adapter.FetchUserInfo(ctx, providerToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch provider user info")
	}

	user, err := srv.linker.Reconcile(ctx, &usecase.ReconcileInput{
		Email:               profile.Email,
		DisplayName:         profile.Name,
		Provider:            profile.Provider,
		ProviderID:          profile.ID,
		ProviderAccessToken: providerToken,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to reconcile social identity")
	}

	accessToken, err := srv.tokenService.Issue(service.TokenKindAccess, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.Issue(service.TokenKindRefresh, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	user.RefreshToken = refreshToken
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Update(ctx, user)
	}); err != nil {
		srv.log(ctx).Error("Failed to persist refresh token after social login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh token persistence transaction")
	}

	publishAccountEvent(ctx, srv.eventPublisher, srv.log(ctx), service.AccountEventSocialLinked, user)

	srv.log(ctx).Debug("Social login completed",
		slog.String("provider", input.Provider.String()),
		slog.Any("userID", user.ID),
	)

	return &usecase.SignInOutput{
		Summary: &usecase.AccountSummary{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// DisconnectSocialAccount revokes the provider grant, then deletes the local
// row. Revocation failure aborts the deletion, leaving the row untouched, so
// a retry against a permanently failing provider never loses the account.
func (srv *socialService) DisconnectSocialAccount(ctx context.Context, accessToken string) error {
	if !srv.tokenService.Validate(accessToken) {
		return errors.Wrap(domainerrors.ErrTokenInvalid, "disconnect rejected")
	}

	subject, err := srv.tokenService.Subject(accessToken)
	if err != nil {
		return errors.Wrap(domainerrors.ErrTokenInvalid, "disconnect rejected")
	}

	user, err := srv.userRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "disconnect failed")
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsSocial() {
		return errors.Wrap(domainerrors.ErrUnsupportedOperation, "account has no provider linkage")
	}

	adapter, ok := srv.registry.Lookup(user.Provider)
	if !ok {
		return errors.Wrapf(domainerrors.ErrUnsupportedOperation, "no adapter registered for provider %q", user.Provider)
	}

	if err := srv.revokeProviderGrant(ctx, adapter, user); err != nil {
		return err
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Delete(ctx, user)
	}); err != nil {
		srv.log(ctx).Error("Failed to execute disconnect deletion transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute disconnect deletion transaction")
	}

	publishAccountEvent(ctx, srv.eventPublisher, srv.log(ctx), service.AccountEventDeleted, user)

	srv.log(ctx).Info("Social account disconnected and deleted",
		slog.String("provider", user.Provider.String()),
		slog.Any("userID", user.ID),
	)

	return nil
}

// revokeProviderGrant calls the provider's revocation endpoint. A missing
// stored token skips the call, deletion proceeds anyway in that case.
func (srv *socialService) revokeProviderGrant(ctx context.Context, adapter service.OAuthProvider, user *entity.User) error {
	if user.SocialAccessToken == "" {
		srv.log(ctx).Warn("No stored provider token, skipping revocation",
			slog.String("provider", user.Provider.String()),
			slog.Any("userID", user.ID),
		)

		return nil
	}

	if err := adapter.Revoke(ctx, user.SocialAccessToken); err != nil {
		srv.log(ctx).Error("Provider revocation failed, aborting account deletion",
			slog.String("provider", user.Provider.String()),
			slog.Any("userID", user.ID),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to revoke provider grant")
	}

	return nil
}
