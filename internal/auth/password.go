package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for secrets bcrypt cannot represent
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordHasher hashes and verifies user secrets
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) (bool, error)
}

// BcryptHasher is a PasswordHasher with a fixed work factor
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher validates the cost once so every hash uses the same work factor
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash returns a salted bcrypt hash of secret
func (h *BcryptHasher) Hash(secret string) (string, error) {
	if len(secret) > 72 {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether secret matches hash. A mismatch is not an error;
// a malformed hash is.
func (h *BcryptHasher) Verify(secret, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// Cost returns the configured work factor
func (h *BcryptHasher) Cost() int {
	return h.cost
}
