package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// Output and salt sizes. Cost parameters come from config.
const (
	hashLen = 32
	saltLen = 16
)

// Hasher derives password hashes with scrypt. It is immutable and safe for
// concurrent use.
type Hasher struct {
	n, r, p int
}

// NewHasher validates the cost parameters and returns a Hasher.
func NewHasher(n, r, p int) (*Hasher, error) {
	if n <= 1 || n&(n-1) != 0 {
		return nil, fmt.Errorf("scrypt N must be a power of two greater than 1, got %d", n)
	}
	if r <= 0 || p <= 0 {
		return nil, fmt.Errorf("scrypt r and p must be positive, got r=%d p=%d", r, p)
	}
	// scrypt rejects r*p >= 2^30.
	if uint64(r)*uint64(p) >= 1<<30 {
		return nil, fmt.Errorf("scrypt r*p too large")
	}
	return &Hasher{n: n, r: r, p: p}, nil
}

// Derive returns the 32-byte scrypt hash of password under salt. The output
// is deterministic for identical inputs.
func (h *Hasher) Derive(password, salt []byte) ([]byte, error) {
	key, err := scrypt.Key(password, salt, h.n, h.r, h.p, hashLen)
	if err != nil {
		return nil, fmt.Errorf("deriving scrypt key: %w", err)
	}
	return key, nil
}

// Verify re-derives the hash of password and compares it with expected in
// constant time.
func (h *Hasher) Verify(password, salt, expected []byte) bool {
	computed, err := h.Derive(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// GenerateSalt returns 16 bytes from the system CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}
