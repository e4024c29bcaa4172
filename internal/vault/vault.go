// Package vault provides the passphrase-keyed encryption gating reveal of
// puzzle reward text.
//
// The encryption key for a reward secret is the plaintext answer itself: a
// caller can only decrypt a secret it could already prove knowledge of via a
// fingerprint match. Wrong-key decryption fails explicitly with ErrWrongKey
// and never yields garbage plaintext.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// ErrWrongKey is returned by Decrypt when the passphrase does not match the
// one the ciphertext was sealed under (or the ciphertext was tampered with;
// the two are indistinguishable by construction).
var ErrWrongKey = errors.New("vault: wrong key or corrupted ciphertext")

const (
	saltSize  = 16
	nonceSize = 24

	// scrypt cost parameters, per the x/crypto recommendation for
	// interactive use.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Encrypt seals plaintext under a passphrase-derived key.
//
// Output layout, base64 encoded: salt || nonce || secretbox(plaintext).
// Salt and nonce are fresh per call, so encrypting the same plaintext twice
// yields different ciphertexts.
func Encrypt(plaintext, passphrase string) (string, error) {
	var salt [saltSize]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return "", fmt.Errorf("vault encrypt: read salt: %w", err)
	}

	key, err := deriveKey(passphrase, salt[:])
	if err != nil {
		return "", fmt.Errorf("vault encrypt: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("vault encrypt: read nonce: %w", err)
	}

	sealed := make([]byte, 0, saltSize+nonceSize+len(plaintext)+secretbox.Overhead)
	sealed = append(sealed, salt[:]...)
	sealed = append(sealed, nonce[:]...)
	sealed = secretbox.Seal(sealed, []byte(plaintext), &nonce, key)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
//
// Returns ErrWrongKey if the passphrase is wrong or the ciphertext has been
// altered. A malformed ciphertext (bad base64, truncated) is reported as its
// own error since it indicates store corruption, not a bad key.
func Decrypt(ciphertext, passphrase string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("vault decrypt: malformed ciphertext: %w", err)
	}
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("vault decrypt: ciphertext too short (%d bytes)", len(sealed))
	}

	key, err := deriveKey(passphrase, sealed[:saltSize])
	if err != nil {
		return "", fmt.Errorf("vault decrypt: %w", err)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return "", ErrWrongKey
	}

	return string(plaintext), nil
}

// deriveKey stretches a passphrase into a secretbox key via scrypt.
func deriveKey(passphrase string, salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
