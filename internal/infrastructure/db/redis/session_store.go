package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/core/domain"
)

// SessionStore persists sessions as versioned JSON under one key per session
// ID. Key format: session:<id>
//
// A payload that fails to decode, or that carries an unknown schema version,
// is deleted and reported as not found, never misparsed into a live session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Saved sessions expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, log: log}
}

func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w: %w", domain.ErrStoreUnavailable, err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Version != domain.SessionSchemaVersion || sess.Validate() != nil {
		s.log.Warn().Str("session_id", id).Msg("discarding malformed session payload")
		if delErr := s.client.Del(ctx, s.key(id)).Err(); delErr != nil {
			s.log.Warn().Err(delErr).Str("session_id", id).Msg("failed to delete malformed session")
		}
		return nil, domain.ErrSessionNotFound
	}

	sess.Role = domain.NormalizeRole(sess.Role)
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	clone := *sess
	clone.Version = domain.SessionSchemaVersion
	clone.Role = domain.NormalizeRole(clone.Role)

	payload, err := json.Marshal(&clone)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	if err := s.client.Set(ctx, s.key(clone.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w: %w", domain.ErrStoreUnavailable, err)
	}

	// Callers observe the normalization they just persisted.
	sess.Version = clone.Version
	sess.Role = clone.Role
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session clear: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return fmt.Sprintf("session:%s", id)
}
