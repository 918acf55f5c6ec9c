package crypto

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used for password hashing.
// Cost 12 puts a single hash in the tens-of-milliseconds range on
// commodity hardware.
const DefaultHashCost = 12

// HashPassword hashes a password with bcrypt at the given cost. A cost of 0
// selects DefaultHashCost. Each call salts independently, so hashing the
// same password twice yields different strings.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultHashCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password is the preimage of the given
// bcrypt hash. The comparison against the re-derived digest is
// constant-time inside the bcrypt library.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsHash reports whether s already looks like a bcrypt hash. Callers use
// this to avoid re-hashing a value that is already a stored hash.
func IsHash(s string) bool {
	if strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$") {
		_, err := bcrypt.Cost([]byte(s))
		return err == nil
	}
	return false
}
