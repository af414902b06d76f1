package ports

import (
	"context"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

// CredentialStore persists the single credential entry used for session
// bootstrap. An entry, when present, always corresponds to a previously
// successful sign-in.
type CredentialStore interface {
	Save(ctx context.Context, creds domain.Credentials) error
	// Load returns domain.ErrNoCredentials when nothing is persisted.
	Load(ctx context.Context) (domain.Credentials, error)
	// Delete is idempotent; deleting an absent entry is not an error.
	Delete(ctx context.Context) error
}

// TokenSource supplies the bearer token of the active session.
type TokenSource interface {
	Token() string
}
