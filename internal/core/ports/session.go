package ports

import (
	"context"
	"time"

	"github.com/via/votehub/internal/core/domain"
)

// SessionStore is the durable slot holding the signed-in user's public record.
type SessionStore interface {
	// Load returns the persisted session, or domain.ErrSessionNotFound when
	// the slot is empty. A malformed or wrong-schema-version payload is
	// cleared and reported as not found rather than misparsed.
	Load(ctx context.Context, id string) (*domain.Session, error)
	// Save validates the record (domain.ErrInvalidUserData when user id,
	// email or name is missing), normalizes the role, and persists exactly
	// the session's public fields.
	Save(ctx context.Context, sess *domain.Session) error
	// Clear removes the persisted session. Idempotent.
	Clear(ctx context.Context, id string) error
}

// SessionService owns the sign-in/sign-out lifecycle and startup
// reconciliation of cached sessions against the credential store.
type SessionService interface {
	SignIn(ctx context.Context, user *domain.User) (*domain.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	// Resume loads the session and, when its last verification is stale,
	// reconciles it with the credential store: canonical role wins, deleted
	// accounts are signed out, transient store failures degrade to the
	// cached data instead of forcing a logout.
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
	TTL() time.Duration
}
