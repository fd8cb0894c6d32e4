package cookiekeeper

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/zalando/go-keyring"
)

// Indirection points for tests; the real keyring needs an OS secret service.
var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
	randRead      = rand.Read
)

// Keychain stores the seal secret in the OS keyring so the encrypted store
// never keeps its key next to the data.
type Keychain struct {
	Service string
	Account string
}

// NewKeychain returns the default keychain slot for this tool.
func NewKeychain() *Keychain {
	return &Keychain{Service: "cookiekeeper", Account: "seal-key"}
}

// Secret returns the stored seal secret.
func (k *Keychain) Secret() (string, error) {
	return keyringGet(k.Service, k.Account)
}

// EnsureSecret returns the stored seal secret, generating and storing a
// random one on first use.
func (k *Keychain) EnsureSecret() (string, error) {
	secret, err := keyringGet(k.Service, k.Account)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", err
	}
	secret = hex.EncodeToString(buf)
	if err := keyringSet(k.Service, k.Account, secret); err != nil {
		return "", err
	}
	return secret, nil
}

// DeleteSecret removes the stored seal secret. Values sealed under it
// become unreadable.
func (k *Keychain) DeleteSecret() error {
	return keyringDelete(k.Service, k.Account)
}
