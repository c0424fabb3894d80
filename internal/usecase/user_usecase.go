// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// SignInInput defines the data required for a password login.
type SignInInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the data for a profile modification.
// NewUsername and NewPassword are optional; a nil pointer leaves the field untouched.
type UpdateProfileInput struct {
	Email           string
	CurrentPassword string
	NewUsername     *string
	NewPassword     *string
}

// DeleteAccountInput defines the confirmation data for account deletion.
type DeleteAccountInput struct {
	Email           string
	CurrentPassword string
}

// --- Output DTOs ---

// AccountSummary returns the account's basic information. The password digest
// is deliberately absent.
type AccountSummary struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
}

// SignInOutput returns the generated tokens after a successful login.
type SignInOutput struct {
	Summary      *AccountSummary
	AccessToken  string
	RefreshToken string
}

// ProfileOutput returns the full profile view, including the stored password
// digest and the registration date formatted as YYYY-MM-DD.
type ProfileOutput struct {
	Username         string
	Email            string
	Password         string
	RegistrationDate string
	Provider         string
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	SignUp(ctx context.Context, input *SignUpInput) (*AccountSummary, error)
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
	GetProfile(ctx context.Context, email string) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error)
	DeleteAccount(ctx context.Context, input *DeleteAccountInput) error
	Logout(ctx context.Context, email string) error
}
