package domain

import (
	"errors"
	"time"
)

// Role identifies what a signed-in user is allowed to do.
type Role string

const (
	RoleJudge      Role = "judge"
	RoleSuperadmin Role = "superadmin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidPassword = errors.New("invalid password")
var ErrStoreUnavailable = errors.New("credential store unavailable")

// IsValid reports whether r is one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleJudge || r == RoleSuperadmin
}

// NormalizeRole maps a missing or unknown role to RoleJudge, the least
// privileged of the two. Records with a valid role pass through unchanged.
func NormalizeRole(r Role) Role {
	if r.IsValid() {
		return r
	}
	return RoleJudge
}

// User models an account in the credential store.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordDigest string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with all secret material stripped.
// Authentication results must never carry the stored digest.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordDigest = ""
	return &clone
}
