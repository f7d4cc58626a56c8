package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher provides hashing logic to securely store passwords.
// Plaintext never leaves the call: Hash returns the salted digest,
// Verify compares through the primitive's own constant-time routine.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(digest string, password string) bool
}

// BcryptHasher derives salted digests with a fixed cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(digest string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
