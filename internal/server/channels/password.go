package channels

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const passwordLength = 12

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID returns a short channel identifier: the first 8 hex characters
// of a v4 UUID. Short enough to type, random enough for ephemeral channels.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// GeneratePassword returns a random alphanumeric channel password.
func GeneratePassword() (string, error) {
	b := make([]byte, passwordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}

// HashPassword derives the stored hash for a channel password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword reports whether the provided password grants access.
// A channel with an empty stored hash is open and accepts anything,
// including no password at all.
func VerifyPassword(storedHash, provided string) bool {
	if storedHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(provided)) == nil
}
