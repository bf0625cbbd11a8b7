// Package auth implements password hashing and verification for stored
// credentials. bcrypt generates a fresh salt per call, so two identical
// passwords never share a stored hash.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of password with an embedded
// randomized salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. It fails
// closed: any comparison error, including a malformed hash, reads as a
// mismatch.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
