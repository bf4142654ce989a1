// Package password hashes and verifies administrator credentials.
//
// New hashes are bcrypt. Accounts migrated from the previous deployment may
// still store an unsalted SHA-256 hex digest; Verify accepts both formats so
// operators can roll credentials over without a flag day.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a bcrypt hash of password at the default cost.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// LegacyHash computes the lowercase SHA-256 hex digest of password, the
// storage format of the previous deployment. Deterministic; kept only so
// migration tooling can match existing records. Do not use for new hashes.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether password matches stored, which may be either a
// bcrypt hash or a legacy SHA-256 hex digest.
func Verify(password, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	if len(stored) == 64 {
		computed := LegacyHash(password)
		return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(stored))) == 1
	}
	return false
}
