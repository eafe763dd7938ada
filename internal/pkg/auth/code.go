package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// LoginCodeLength is the number of digits in a login code
const LoginCodeLength = 6

// GenerateLoginCode produces a random six-digit login code
func GenerateLoginCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate login code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashLoginCode hashes a login code for storage. Codes are short lived but
// still never persisted in the clear.
func HashLoginCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash login code: %w", err)
	}
	return string(hash), nil
}

// CheckLoginCode compares a submitted code against the stored hash
func CheckLoginCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
