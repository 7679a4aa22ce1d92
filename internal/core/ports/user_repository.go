package ports

import (
	"context"

	"github.com/via/votehub/internal/core/domain"
)

// UserRepository is the credential store: the external table of accounts with
// digests and roles. Implementations must keep "row genuinely absent"
// (domain.ErrUserNotFound) distinct from transient lookup failures
// (wrapped domain.ErrStoreUnavailable); the session reconciler branches on it.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateDigest replaces the stored password digest; used by the lazy
	// legacy-to-bcrypt migration on successful login.
	UpdateDigest(ctx context.Context, id, newDigest string) error
}
