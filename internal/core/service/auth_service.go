package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
	"github.com/via/votehub/pkg/digest"
)

// AuthService verifies credentials against the credential store and migrates
// legacy digests to bcrypt on the next successful login.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Authenticate looks up the account by exact email and checks the password
// digest. Empty or whitespace-only credentials short-circuit before any
// lookup. The returned user never carries the stored digest.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !digest.Verify(password, user.PasswordDigest) {
		return nil, domain.ErrInvalidPassword
	}

	if digest.NeedsUpgrade(user.PasswordDigest) {
		s.upgradeDigest(ctx, user, password)
	}

	return user.Sanitized(), nil
}

// upgradeDigest rehashes a legacy digest with bcrypt. Best-effort: a failure
// is logged and the login still succeeds, the row will be retried next time.
func (s *AuthService) upgradeDigest(ctx context.Context, user *domain.User, password string) {
	hashed, err := digest.Bcrypt(password)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("digest rehash failed")
		return
	}
	if err := s.repo.UpdateDigest(ctx, user.ID, hashed); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("digest migration not persisted")
		return
	}
	s.logger.Info().Str("user_id", user.ID).Msg("legacy digest migrated to bcrypt")
}

// CreateUser provisions an account with the current digest scheme. Missing or
// unknown roles default to judge, matching the credential table's default.
func (s *AuthService) CreateUser(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrInvalidInput
	}

	hashed, err := digest.Bcrypt(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:          email,
		Name:           name,
		PasswordDigest: hashed,
		Role:           domain.NormalizeRole(role),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created.Sanitized(), nil
}
