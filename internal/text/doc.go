// Package text provides canonical text normalization and one-way
// fingerprinting for puzzle answers.
//
// This package is the foundational layer: every other internal package that
// compares answer text does so exclusively through Fingerprint. Plaintext
// answers are never compared directly once a puzzle is stored.
//
// Key design constraints:
//   - Normalize is total: any input (including empty) yields a valid result
//   - Fingerprint("") == "" so an empty slot is distinguishable from a hash
//   - Fingerprints are SHA-256 hex, fixed length, collision-resistant
package text
