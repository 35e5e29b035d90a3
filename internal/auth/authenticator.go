// Package auth provides user identity for the ledger: account
// registration, credential verification and JWT session tokens. The
// ledger itself never sees credentials, only the owner id resolved from a
// validated token.
package auth

import (
	"context"

	"github.com/sobanhassan/hisaabkitaab/internal/models"
)

// Authenticator defines the interface for authentication
// implementations. The credential format depends on the implementation
// (password, OAuth token, ...), which keeps the HTTP layer independent of
// the auth method.
type Authenticator interface {
	// Register creates a new account and returns the created user.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
