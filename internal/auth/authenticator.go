package auth

import (
	"context"

	"github.com/rdevang/smartsplit/internal/models"
)

// Authenticator abstracts how users prove who they are, so the handler
// layer does not care whether credentials are passwords, passkeys, or
// OAuth tokens.
type Authenticator interface {
	// Register creates a new account. The credential format depends on
	// the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that a credential meets the
	// implementation's requirements before any storage work happens.
	ValidateCredential(credential string) error
}
