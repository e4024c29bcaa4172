package text

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the one-way lookup key for a piece of answer text:
// SHA-256 over the normalized form, hex encoded.
//
// The empty input maps to the empty fingerprint rather than
// SHA256(""). This keeps "slot never populated" distinguishable from
// "slot holds the hash of some text" and means an empty guess can never
// match a stored slot.
//
// Fingerprint equality is the sole admissible match test; two texts that
// differ only in spacing, case, or punctuation share a fingerprint.
func Fingerprint(s string) string {
	normalized := Normalize(s)
	if normalized == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
