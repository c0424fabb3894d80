package impl

import (
	"context"
	"log/slog"

	deliverycontext "speakit/internal/delivery/context"
	"speakit/internal/domain/constants"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/repository"
	"speakit/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityLinker implements the IdentityLinker interface.
type identityLinker struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// IdentityLinkerParams holds dependencies for identityLinker, injected by Fx.
type IdentityLinkerParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewIdentityLinker is the constructor for identityLinker.
func NewIdentityLinker(params IdentityLinkerParams) usecase.IdentityLinker {
	return &identityLinker{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (l *identityLinker) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.logger)
}

// Reconcile maps a verified remote identity onto a local user row.
// The find-or-create and the linkage overwrite run in one transaction so a
// concurrent login for the same email cannot observe a half-written row.
func (l *identityLinker) Reconcile(ctx context.Context, input *usecase.ReconcileInput) (*entity.User, error) {
	var reconciled *entity.User

	err := l.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByEmail(ctx, input.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return l.createSocialUser(ctx, userRepo, input, &reconciled)
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by email")
		}

		return l.relinkExistingUser(ctx, userRepo, existing, input, &reconciled)
	})

	if err != nil {
		l.log(ctx).Error("Failed to execute identity reconciliation transaction",
			slog.String("provider", input.Provider.String()),
			slog.String("email", input.Email),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to execute identity reconciliation transaction")
	}

	return reconciled, nil
}

// createSocialUser builds a new social-only account. The password column gets
// the sentinel value because no local credential exists for this account.
func (l *identityLinker) createSocialUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	input *usecase.ReconcileInput,
	reconciled **entity.User,
) error {
	l.log(ctx).Info("Social user not found, creating new account",
		slog.String("provider", input.Provider.String()),
		slog.String("email", input.Email),
	)

	newUser := &entity.User{
		Username:          input.DisplayName,
		Email:             input.Email,
		Password:          constants.SocialLoginPassword,
		Role:              entity.RoleUser,
		Provider:          input.Provider,
		ProviderID:        input.ProviderID,
		SocialAccessToken: input.ProviderAccessToken,
	}

	if err := userRepo.Create(ctx, newUser); err != nil {
		return errors.Wrap(err, "failed to create social user")
	}

	*reconciled = newUser

	return nil
}

// relinkExistingUser overwrites the provider linkage fields unconditionally.
// Two concurrent logins for the same email race here with last-write-wins
// semantics; the store's row-level serialization is the only guard.
func (l *identityLinker) relinkExistingUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	existing *entity.User,
	input *usecase.ReconcileInput,
	reconciled **entity.User,
) error {
	l.log(ctx).Info("Relinking existing account to provider",
		slog.String("provider", input.Provider.String()),
		slog.Any("userID", existing.ID),
	)

	existing.Provider = input.Provider
	existing.ProviderID = input.ProviderID
	existing.SocialAccessToken = input.ProviderAccessToken
	existing.Username = input.DisplayName

	if err := userRepo.Update(ctx, existing); err != nil {
		return errors.Wrap(err, "failed to update user provider linkage")
	}

	*reconciled = existing

	return nil
}
