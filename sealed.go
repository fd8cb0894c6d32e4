package cookiekeeper

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	sealPrefix     = "ck1"
	sealSalt       = "cookiekeeper/seal/v1"
	sealIterations = 4096
	sealKeyLen     = 32
)

// SealKey derives the AES key for a SealedStore from a secret, typically
// one held in the OS keyring (see Keychain) or supplied as a passphrase.
func SealKey(secret string) []byte {
	return pbkdf2.Key([]byte(secret), []byte(sealSalt), sealIterations, sealKeyLen, sha256.New)
}

// SealedStore keeps the cookie value encrypted at rest inside another
// Store. Stored values are base64("ck1" || nonce || AES-GCM ciphertext).
// Read returns plaintext, so write-if-changed comparison in
// PersistIfChanged keeps working even though each seal produces a fresh
// nonce.
type SealedStore struct {
	inner Store
	key   []byte
}

// NewSealedStore wraps inner with encryption under the given 32-byte key.
func NewSealedStore(inner Store, key []byte) *SealedStore {
	return &SealedStore{inner: inner, key: key}
}

// Read returns the decrypted value for key.
func (s *SealedStore) Read(key string) (string, bool, error) {
	raw, ok, err := s.inner.Read(key)
	if err != nil || !ok {
		return "", ok, err
	}
	if raw == "" {
		return "", true, nil
	}
	plain, err := openSealed(raw, s.key)
	if err != nil {
		return "", false, fmt.Errorf("cookiekeeper: unseal %s: %w", key, err)
	}
	return plain, true, nil
}

// Write seals the value and stores the ciphertext in the inner store.
func (s *SealedStore) Write(key, value string) error {
	sealed, err := seal(value, s.key)
	if err != nil {
		return fmt.Errorf("cookiekeeper: seal %s: %w", key, err)
	}
	return s.inner.Write(key, sealed)
}

// Backup delegates to the inner store; snapshots stay sealed.
func (s *SealedStore) Backup(key string) (string, error) {
	return s.inner.Backup(key)
}

// PruneBackups delegates to the inner store.
func (s *SealedStore) PruneBackups(key string, keep int) []string {
	return s.inner.PruneBackups(key, keep)
}

func seal(value string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	out := make([]byte, 0, len(sealPrefix)+len(nonce)+len(value)+gcm.Overhead())
	out = append(out, sealPrefix...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func openSealed(encoded string, key []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	if len(raw) < len(sealPrefix) || string(raw[:len(sealPrefix)]) != sealPrefix {
		return "", errors.New("not a sealed value")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	payload := raw[len(sealPrefix):]
	if len(payload) < gcm.NonceSize() {
		return "", errors.New("sealed value too short")
	}
	nonce := payload[:gcm.NonceSize()]
	plain, err := gcm.Open(nil, nonce, payload[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
