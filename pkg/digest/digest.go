// Package digest verifies passwords against the two digest formats found in
// the credential store.
//
// Legacy records hold a reversible base64 encoding of the plaintext, a
// holdover from the first deployment that provides no real secrecy. New and
// migrated records hold a bcrypt hash. Verify accepts both so existing rows
// keep working; NeedsUpgrade lets callers rehash legacy rows lazily on the
// next successful login.
package digest

import (
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt digests start with "$2a$", "$2b$" or "$2y$".
const bcryptPrefix = "$2"

// Legacy returns the historical reversible encoding of plaintext. Kept only
// for byte-compatibility with rows written before the bcrypt migration; never
// use it for new records.
func Legacy(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext))
}

// Bcrypt hashes plaintext with bcrypt at the default cost.
func Bcrypt(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored digest, dispatching on
// the digest format.
func Verify(plaintext, stored string) bool {
	if strings.HasPrefix(stored, bcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}
	return Legacy(plaintext) == stored
}

// NeedsUpgrade reports whether the stored digest uses the legacy scheme and
// should be rehashed once the plaintext is next available.
func NeedsUpgrade(stored string) bool {
	return !strings.HasPrefix(stored, bcryptPrefix)
}
