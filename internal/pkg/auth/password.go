package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing time against brute-force resistance.
const bcryptCost = 12

// HashPassword derives a salted bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a stored hash against a candidate password.
// bcrypt's comparison is constant-time over the hash.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// ValidateHash reports whether a string is a well-formed bcrypt hash.
// Catches configuration that accidentally carries a plaintext password.
func ValidateHash(hashed string) error {
	_, err := bcrypt.Cost([]byte(hashed))
	return err
}
