package util

import "golang.org/x/crypto/bcrypt"

// bcryptCost is deliberately above the library default so that brute-forcing
// a leaked hash stays expensive.
const bcryptCost = 12

// HashPassword derives a salted bcrypt hash. The salt is generated per call,
// so hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. Malformed
// or foreign-format hashes verify as false rather than erroring, so callers
// can treat any mismatch as plain bad credentials.
func VerifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
