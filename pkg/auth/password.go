package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	apperrors "aquavalle/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("failed to hash password", err)
	}
	return string(hashed), nil
}

func VerifyPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// GenerateResetCode returns a 6-digit numeric code, zero padded.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", apperrors.Internal("failed to generate reset code", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
