package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt is returned by Decrypt for any token that cannot be decrypted:
// malformed base64, truncated nonce, tampered ciphertext, or a token sealed
// under a different key. Callers match it with errors.Is.
var ErrDecrypt = errors.New("decrypt failed")

// Cipher provides AES-256-GCM encryption and decryption for single text
// values. It is stateless after construction and safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a Cipher from a 64-character hex string encoding a 32-byte
// AES-256 key. A missing or malformed key is a configuration error and must
// block startup; New reports it, main treats it as fatal.
func New(keyHex string) (*Cipher, error) {
	if keyHex == "" {
		return nil, fmt.Errorf("cipher: key is not set")
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("cipher: key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("cipher: key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher: create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts the plaintext string and returns a base64-encoded token
// with the nonce prepended.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cipher: generate nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, so the result is nonce + ciphertext.
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decodes the base64 token, extracts the prepended nonce, and
// decrypts. Every failure mode wraps ErrDecrypt.
func (c *Cipher) Decrypt(token string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", ErrDecrypt, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: token too short", ErrDecrypt)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plaintext), nil
}
