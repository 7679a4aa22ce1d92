package ports

import (
	"context"

	"github.com/via/votehub/internal/core/domain"
)

// AuthService verifies credentials against the credential store.
type AuthService interface {
	// Authenticate returns the sanitized user on success. Failures are the
	// tagged domain errors: ErrInvalidInput (empty credentials, no lookup
	// performed), ErrUserNotFound, ErrInvalidPassword, or a wrapped
	// ErrStoreUnavailable.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// CreateUser provisions an account out-of-band (seeding, admin flows).
	CreateUser(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, error)
}
