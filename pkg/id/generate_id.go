package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewReference returns a UUID string for externally visible references
// (payment and ledger rows) where dashes are fine.
func NewReference() string {
	return uuid.NewString()
}
