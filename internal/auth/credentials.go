// Package auth owns password hashing and verification. Plaintext
// passwords never leave this package's call frames and are never stored
// or logged.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt cost factor used for new hashes.
const hashCost = 10

// HashPassword returns a one-way adaptive hash of the password with an
// embedded per-password salt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash. The
// comparison is constant-time within bcrypt.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
