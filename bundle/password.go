package bundle

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// GeneratePassword generates a random alphanumeric password, easy to type
// and share alongside the archive. Length is clamped to 8..128.
func GeneratePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	if length > 128 {
		length = 128
	}

	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	limit := big.NewInt(int64(len(charset)))
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}

// ValidatePassword checks if a password meets minimum requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return errors.New("password must be at least 4 characters")
	}
	return nil
}
