package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// saltContext keys the argon2 derivation to this application; rotating it
// invalidates every stored credential.
const saltContext = "ember-scriptorium/settings/v1"

var ErrEmptyPassphrase = errors.New("secrets: empty passphrase")

// Cipher encrypts short credential strings for storage. Each Encrypt call
// uses a fresh 12-byte nonce; the stored form is base64(nonce || ciphertext).
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 256-bit AES key from the configured passphrase with
// argon2id and wraps it in GCM.
func NewCipher(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	key := argon2.IDKey([]byte(passphrase), []byte(saltContext), 1, 64*1024, 4, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...)), nil
}

func (c *Cipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("secrets: decode: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", errors.New("secrets: ciphertext too short")
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("secrets: open: %w", err)
	}
	return string(plaintext), nil
}
