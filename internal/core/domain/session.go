package domain

import (
	"errors"
	"time"
)

// SessionSchemaVersion tags the persisted session payload. Loads of any other
// version are treated as malformed and cleared rather than misparsed.
const SessionSchemaVersion = 1

var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidUserData = errors.New("invalid user data")

// Session is the per-sign-in record of who is active and with what role.
// It carries a copy of the user's public fields and never the digest.
type Session struct {
	ID         string    `json:"id"`
	Version    int       `json:"v"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	VerifiedAt time.Time `json:"verified_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields every persisted session must carry. The role is
// not checked here; stores normalize it on save instead of rejecting.
func (s *Session) Validate() error {
	if s == nil || s.ID == "" || s.UserID == "" || s.Email == "" || s.Name == "" {
		return ErrInvalidUserData
	}
	return nil
}
