// Package secrets holds the two hashing schemes used by the server: a
// deterministic keyed hash for bearer tokens (so the store can look rows up
// by hash) and a salted slow hash for passwords. The schemes are deliberately
// distinct; neither is usable for the other's purpose.
package secrets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/akorchagin/authgate/internal/common"
)

// TokenHasher computes deterministic HMAC-SHA256 digests of raw token
// secrets. Equal inputs always produce equal output for a given key, which is
// what makes direct equality lookup by hash possible. The output is lowercase
// hex, safe for storage and transport without escaping.
type TokenHasher struct {
	key []byte
}

// NewTokenHasher returns a TokenHasher keyed with the given secret key.
// The key must not be empty.
func NewTokenHasher(key []byte) (*TokenHasher, error) {
	if len(key) == 0 {
		return nil, common.ErrorValidation
	}
	return &TokenHasher{key: key}, nil
}

// Hash returns the hex HMAC-SHA256 digest of secret. An empty secret is a
// validation error, never a panic.
func (h *TokenHasher) Hash(secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", common.ErrorValidation
	}
	mac := hmac.New(sha256.New, h.key)
	mac.Write(secret)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
