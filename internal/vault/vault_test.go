package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	testCases := []struct {
		name      string
		plaintext string
		key       string
	}{
		{"simple", "GZ", "ONIONMAN"},
		{"multiline reward", "line one\nline two\nline three", "2COAL-1ROPE--DIANGO"},
		{"empty plaintext", "", "somekey"},
		{"unicode reward", "gratz 🎉", "ONIONMAN"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := Encrypt(tc.plaintext, tc.key)
			require.NoError(t, err)
			if tc.plaintext != "" {
				assert.NotContains(t, ciphertext, tc.plaintext)
			}

			got, err := Decrypt(ciphertext, tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, got)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	ciphertext, err := Encrypt("GZ", "right key")
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, "wrong key")
	assert.ErrorIs(t, err, ErrWrongKey)
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Run("not base64", func(t *testing.T) {
		_, err := Decrypt("%%%not-base64%%%", "key")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrWrongKey, "corruption is not a key mismatch")
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decrypt("c2hvcnQ=", "key") // "short"
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrWrongKey)
	})
}

func TestEncrypt_FreshSaltPerCall(t *testing.T) {
	a, err := Encrypt("GZ", "key")
	require.NoError(t, err)
	b, err := Encrypt("GZ", "key")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNameObscurer_RoundTrip(t *testing.T) {
	o, err := NewNameObscurer("system-key")
	require.NoError(t, err)

	obscured, err := o.Obscure("Onion")
	require.NoError(t, err)
	assert.NotContains(t, obscured, "Onion")

	name, err := o.Unobscure(obscured)
	require.NoError(t, err)
	assert.Equal(t, "Onion", name)
}

func TestNameObscurer_EmptyKeyRejected(t *testing.T) {
	_, err := NewNameObscurer("")
	assert.Error(t, err)
}

func TestNameObscurer_KeyMismatch(t *testing.T) {
	a, err := NewNameObscurer("key-a")
	require.NoError(t, err)
	b, err := NewNameObscurer("key-b")
	require.NoError(t, err)

	obscured, err := a.Obscure("Onion")
	require.NoError(t, err)

	_, err = b.Unobscure(obscured)
	assert.ErrorIs(t, err, ErrWrongKey)
}
