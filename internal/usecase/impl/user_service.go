// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"speakit/config"
	deliverycontext "speakit/internal/delivery/context"
	"speakit/internal/domain/entity"
	domainerrors "speakit/internal/domain/errors"
	"speakit/internal/domain/repository"
	"speakit/internal/domain/service"
	"speakit/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	eventPublisher service.EventPublisher
	passwordPolicy *config.PasswordStrengthConfig
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	EventPublisher service.EventPublisher
	Config         *config.Config
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var policy *config.PasswordStrengthConfig
	if params.Config != nil {
		policy = params.Config.PasswordStrength
	}

	return &userService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		eventPublisher: params.EventPublisher,
		passwordPolicy: policy,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp orchestrates the complete registration process. The duplicate-email
// check and the password policy both run before either can fail the request,
// so the caller receives every violation in one aggregated error.
func (srv *userService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.AccountSummary, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	var violations *domainerrors.ValidationError

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		violations = violations.Append(domainerrors.ErrDuplicateEmail.Message())
	case errors.Is(err, repository.ErrUserNotFound):
		// Email is free.
	default:
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	violations = violations.Append(validatePassword(srv.passwordPolicy, input.Password)...)

	if violations.HasViolations() {
		srv.log(ctx).Warn("Signup validation failed",
			slog.String("email", input.Email),
			slog.Int("violations", len(violations.Messages())),
		)

		return nil, violations
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     entity.RoleUser,
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, newUser)
	}); err != nil {
		srv.log(ctx).Error("Failed to execute signup transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	publishAccountEvent(ctx, srv.eventPublisher, srv.log(ctx), service.AccountEventRegistered, newUser)

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return &usecase.AccountSummary{
		ID:        newUser.ID,
		Username:  newUser.Username,
		Email:     newUser.Email,
		CreatedAt: newUser.CreatedAt,
	}, nil
}

// SignIn verifies the password and issues the token pair. The refresh token
// value is mirrored onto the user row so logout can invalidate it later.
func (srv *userService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	srv.log(ctx).Debug("Starting sign-in", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same generic failure as a wrong password so the response never
			// reveals whether the email is registered.
			srv.log(ctx).Warn("Sign-in failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// bcrypt comparison is CPU-bound; it runs outside any transaction. A
	// social-only row stores the sentinel, which never matches a real password.
	if !srv.hasher.Check(input.Password, user.Password) {
		srv.log(ctx).Warn("Sign-in failed, password mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
	}

	accessToken, refreshToken, err := srv.issueTokenPair(user.Email)
	if err != nil {
		return nil, err
	}

	if err := srv.persistRefreshToken(ctx, user, refreshToken); err != nil {
		srv.log(ctx).Error("Failed to persist refresh token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User signed in", slog.Any("userID", user.ID))

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

// GetProfile returns the stored profile with the registration date formatted
// as YYYY-MM-DD.
func (srv *userService) GetProfile(ctx context.Context, email string) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return profileFromUser(user), nil
}

// UpdateProfile applies an optional username and/or password change after
// verifying the current password. Social-linked rows are never editable.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Info("Updating profile", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile update failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// The forbidden check runs before the password check so a social account
	// is rejected even when the caller somehow knows the sentinel value.
	if user.IsSocial() {
		return nil, errors.Wrap(domainerrors.ErrSocialAccountUpdateForbidden, "profile update rejected")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.Password) {
		return nil, errors.Wrap(domainerrors.ErrCurrentPasswordMismatch, "profile update rejected")
	}

	changed, err := srv.applyProfileChanges(user, input)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.UserRepo().Update(ctx, user)
		}); err != nil {
			srv.log(ctx).Error("Failed to execute profile update transaction", slog.Any("userID", user.ID), slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to execute profile update transaction")
		}
	}

	return profileFromUser(user), nil
}

// applyProfileChanges mutates the entity in place and reports whether
// anything actually changed. A no-op request skips the write entirely.
func (srv *userService) applyProfileChanges(user *entity.User, input *usecase.UpdateProfileInput) (bool, error) {
	changed := false

	if input.NewUsername != nil && *input.NewUsername != "" && *input.NewUsername != user.Username {
		user.Username = *input.NewUsername
		changed = true
	}

	if input.NewPassword != nil && *input.NewPassword != "" {
		if msgs := validatePassword(srv.passwordPolicy, *input.NewPassword); len(msgs) > 0 {
			return false, domainerrors.NewValidationError(msgs...)
		}

		hashed, err := srv.hasher.Hash(*input.NewPassword)
		if err != nil {
			return false, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		user.Password = hashed
		changed = true
	}

	return changed, nil
}

// DeleteAccount verifies the current password and removes the row outright.
func (srv *userService) DeleteAccount(ctx context.Context, input *usecase.DeleteAccountInput) error {
	srv.log(ctx).Info("Deleting account", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "account deletion failed")
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.Password) {
		return errors.Wrap(domainerrors.ErrCurrentPasswordMismatch, "account deletion rejected")
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Delete(ctx, user)
	}); err != nil {
		srv.log(ctx).Error("Failed to execute account deletion transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute account deletion transaction")
	}

	publishAccountEvent(ctx, srv.eventPublisher, srv.log(ctx), service.AccountEventDeleted, user)

	srv.log(ctx).Info("Account deleted", slog.Any("userID", user.ID))

	return nil
}

// Logout clears only the stored refresh-token reference. A still-unexpired
// access token keeps validating until its lifetime elapses; short access-token
// lifetimes are what bound that window.
func (srv *userService) Logout(ctx context.Context, email string) error {
	srv.log(ctx).Info("Logging out", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "logout failed")
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	user.RefreshToken = ""

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Update(ctx, user)
	}); err != nil {
		srv.log(ctx).Error("Failed to execute logout transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute logout transaction")
	}

	return nil
}

// issueTokenPair creates the access and refresh tokens, both carrying the
// account email as subject.
func (srv *userService) issueTokenPair(subject string) (string, string, error) {
	accessToken, err := srv.tokenService.Issue(service.TokenKindAccess, subject)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.Issue(service.TokenKindRefresh, subject)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to issue refresh token")
	}

	return accessToken, refreshToken, nil
}

// persistRefreshToken mirrors the latest refresh token value onto the row.
func (srv *userService) persistRefreshToken(ctx context.Context, user *entity.User, refreshToken string) error {
	user.RefreshToken = refreshToken

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Update(ctx, user)
	}); err != nil {
		return errors.Wrap(err, "failed to execute refresh token persistence transaction")
	}

	return nil
}

func profileFromUser(user *entity.User) *usecase.ProfileOutput {
	return &usecase.ProfileOutput{
		Username:         user.Username,
		Email:            user.Email,
		Password:         user.Password,
		RegistrationDate: user.RegistrationDate(),
		Provider:         user.Provider.String(),
	}
}
