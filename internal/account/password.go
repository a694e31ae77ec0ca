package account

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/saofrance/shop-api/internal/domain"
)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < domain.MinPasswordLength || len(password) > domain.MaxPasswordLength {
		return "", fmt.Errorf("%w: password must be between %d and %d bytes",
			domain.ErrInvalidInput, domain.MinPasswordLength, domain.MaxPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword returns domain.ErrInvalidCredentials when password does not match hash
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidCredentials
	}
	return fmt.Errorf("failed to compare password: %w", err)
}

// passwordFingerprint binds reset tokens to the current credential.
// Once the password changes, outstanding reset tokens stop matching.
func passwordFingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}
