package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/api/metrics"
	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

const (
	defaultSessionTTL     = 24 * time.Hour
	defaultReconcileEvery = 5 * time.Minute
	defaultLookupTimeout  = 3 * time.Second
)

// SessionService owns the sign-in/sign-out lifecycle and the reconciliation
// of cached sessions against the credential store. Reconciliation favors
// continuity: a session is only discarded when the store confirms the account
// is gone, never because the store could not be reached.
type SessionService struct {
	users          ports.UserRepository
	store          ports.SessionStore
	ttl            time.Duration
	reconcileEvery time.Duration
	lookupTimeout  time.Duration
	logger         zerolog.Logger
}

// SessionOptions tunes the session lifecycle. Zero values take defaults.
type SessionOptions struct {
	TTL            time.Duration
	ReconcileEvery time.Duration
	LookupTimeout  time.Duration
}

func NewSessionService(users ports.UserRepository, store ports.SessionStore, opts SessionOptions, logger zerolog.Logger) *SessionService {
	if opts.TTL <= 0 {
		opts.TTL = defaultSessionTTL
	}
	if opts.ReconcileEvery <= 0 {
		opts.ReconcileEvery = defaultReconcileEvery
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}
	return &SessionService{
		users:          users,
		store:          store,
		ttl:            opts.TTL,
		reconcileEvery: opts.ReconcileEvery,
		lookupTimeout:  opts.LookupTimeout,
		logger:         logger,
	}
}

// TTL is the session (and cookie) lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// SignIn creates and persists a session for an already-authenticated user.
// The session is durable before SignIn returns, so no role-gated view can be
// reached ahead of it.
func (s *SessionService) SignIn(ctx context.Context, user *domain.User) (*domain.Session, error) {
	if user == nil || user.ID == "" || user.Email == "" || user.Name == "" {
		return nil, domain.ErrInvalidUserData
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:         uuid.NewString(),
		Version:    domain.SessionSchemaVersion,
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       domain.NormalizeRole(user.Role),
		VerifiedAt: now,
		CreatedAt:  now,
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SignOut clears the persisted session. Idempotent: signing out an already
// cleared session is not an error.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Clear(ctx, sessionID)
}

// Resume loads the cached session and reconciles it with the credential store
// when its last verification is stale. Returns domain.ErrSessionNotFound when
// no usable session exists.
func (s *SessionService) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if time.Since(sess.VerifiedAt) < s.reconcileEvery {
		return sess, nil
	}
	return s.reconcile(ctx, sess)
}

// reconcile re-validates the cached session against the credential store.
//
// The canonical record is fetched by user ID, falling back to email when the
// ID is confirmed gone (accounts are sometimes recreated under a new ID).
// Only a confirmed double miss signs the user out; transient store failures
// keep the cached data as-is so an outage never forces a logout.
func (s *SessionService) reconcile(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.users.FindByID(lookupCtx, sess.UserID)
	if err != nil && errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.users.FindByEmail(lookupCtx, sess.Email)
		if err != nil && errors.Is(err, domain.ErrUserNotFound) {
			// Confirmed gone under both keys: the account was deleted.
			metrics.SessionsReconciledTotal.WithLabelValues("deleted").Inc()
			s.logger.Info().Str("session_id", sess.ID).Str("user_id", sess.UserID).Msg("account no longer exists, clearing session")
			if clearErr := s.store.Clear(ctx, sess.ID); clearErr != nil {
				s.logger.Warn().Err(clearErr).Str("session_id", sess.ID).Msg("failed to clear stale session")
			}
			return nil, domain.ErrSessionNotFound
		}
	}
	if err != nil {
		// Could not confirm either way: degrade to the cached session.
		metrics.SessionsReconciledTotal.WithLabelValues("degraded").Inc()
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("credential store unreachable, keeping cached session")
		return sess, nil
	}

	outcome := "refreshed"
	canonical := domain.NormalizeRole(user.Role)
	if canonical != sess.Role {
		outcome = "drift"
		s.logger.Warn().
			Str("session_id", sess.ID).
			Str("cached_role", string(sess.Role)).
			Str("canonical_role", string(canonical)).
			Msg("role drift detected, database role wins")
	}
	metrics.SessionsReconciledTotal.WithLabelValues(outcome).Inc()

	sess.UserID = user.ID
	sess.Email = user.Email
	sess.Name = user.Name
	sess.Role = canonical
	sess.VerifiedAt = time.Now().UTC()

	if err := s.store.Save(ctx, sess); err != nil {
		// The merged record is still authoritative for this request.
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to persist reconciled session")
	}
	return sess, nil
}
