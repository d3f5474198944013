// Copyright (c) 2026 Plume. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random hex string of
// byteLength entropy bytes. Used for refresh tokens.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashToken returns the SHA-256 digest of a token as a hex string.
//
// Refresh tokens are stored hashed so a leaked session store cannot be
// replayed against the API.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
