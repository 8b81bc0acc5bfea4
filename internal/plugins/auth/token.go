package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes is the number of random bytes in a session token.
// 64 bytes = 512 bits of entropy, standard base64 encoded to 88 characters.
const tokenBytes = 64

// tokenLen is the encoded length of every token this package issues.
var tokenLen = base64.StdEncoding.EncodedLen(tokenBytes)

// generateSessionToken creates a cryptographically random base64 token.
func generateSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// wellFormedToken reports whether token could have been issued by
// generateSessionToken. Anything else is rejected before touching a store.
func wellFormedToken(token string) bool {
	if len(token) != tokenLen {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	return err == nil && len(raw) == tokenBytes
}
