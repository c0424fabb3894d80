// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents one local account. Accounts are created either through
// password signup or through the first completed social login; in the latter
// case the password column holds a fixed sentinel instead of a digest.
type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	// Password is an adaptive-hash digest, or the social-login sentinel for
	// accounts without a local password.
	Password string
	Role     Role

	// Provider linkage. Provider is empty for password-only accounts; a
	// non-empty Provider always comes with a non-empty ProviderID.
	Provider          ProviderType
	ProviderID        string
	SocialAccessToken string

	// RefreshToken mirrors the most recently issued refresh token so logout
	// can invalidate it by clearing the field.
	RefreshToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSocial reports whether the account is linked to a social provider.
func (u *User) IsSocial() bool {
	return u.Provider != ""
}

// RegistrationDate formats the creation timestamp for profile responses.
func (u *User) RegistrationDate() string {
	return u.CreatedAt.Format("2006-01-02")
}
