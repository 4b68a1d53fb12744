package utils

import (
	"crypto/sha256" // Pre-hash for long secrets
	"encoding/hex"  // Hex encoding of the digest

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// bcrypt silently ignores input beyond 72 bytes, so longer secrets are
// reduced to a fixed-size digest first. Both paths must agree on the rule.
const bcryptInputLimit = 72

// preHash maps over-long passwords to a 64-byte hex digest
func preHash(password string) []byte {
	if len(password) <= bcryptInputLimit {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// HashPassword returns a salted bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(preHash(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash
func CheckPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), preHash(password)) == nil
}
