package secrets

import (
	"github.com/akorchagin/authgate/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt. Unlike TokenHasher the output embeds a random
// per-record salt, so two users with the same password get different hashes
// and the hash cannot serve as a lookup key.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a PasswordHasher with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to the default cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password. An empty password is a
// validation error.
func (h *PasswordHasher) Hash(password []byte) (string, error) {
	if len(password) == 0 {
		return "", common.ErrorValidation
	}
	hash, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored bcrypt hash.
func (h *PasswordHasher) Verify(password []byte, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), password) == nil
}
