package vault

import "fmt"

// NameObscurer reversibly encrypts puzzle names under a fixed system key so
// casual inspection of the persisted snapshot does not leak them. This is a
// deterrent, not a secrecy guarantee: anyone holding the system key can
// reverse it, unlike the one-way answer fingerprints.
type NameObscurer struct {
	systemKey string
}

// NewNameObscurer creates an obscurer for the given system key.
// The key comes from the environment (never the config file); an empty key
// is rejected at construction rather than silently producing unprotected
// output.
func NewNameObscurer(systemKey string) (*NameObscurer, error) {
	if systemKey == "" {
		return nil, fmt.Errorf("name obscurer: system key is empty")
	}
	return &NameObscurer{systemKey: systemKey}, nil
}

// Obscure encrypts a puzzle name for storage.
func (o *NameObscurer) Obscure(name string) (string, error) {
	obscured, err := Encrypt(name, o.systemKey)
	if err != nil {
		return "", fmt.Errorf("obscure name: %w", err)
	}
	return obscured, nil
}

// Unobscure recovers a puzzle name from its stored form.
// ErrWrongKey here means the snapshot was written under a different system
// key than the process is running with.
func (o *NameObscurer) Unobscure(obscured string) (string, error) {
	name, err := Decrypt(obscured, o.systemKey)
	if err != nil {
		return "", fmt.Errorf("unobscure name: %w", err)
	}
	return name, nil
}
