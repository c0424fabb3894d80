package usecase

import (
	"context"

	"speakit/internal/domain/entity"
)

// ReconcileInput carries the verified remote identity to map onto a local account.
type ReconcileInput struct {
	Email               string
	DisplayName         string
	Provider            entity.ProviderType
	ProviderID          string
	ProviderAccessToken string
}

// IdentityLinker maps a verified remote identity onto a local user row.
type IdentityLinker interface {
	// Reconcile finds the account by email and refreshes its provider linkage,
	// or creates a new social-only account when no row exists. The update
	// branch overwrites linkage fields unconditionally (last login wins).
	Reconcile(ctx context.Context, input *ReconcileInput) (*entity.User, error)
}
