package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// ContentSource reports which branch produced the plaintext on read.
type ContentSource int

const (
	// SourceDecrypted means the stored value was valid ciphertext for our key.
	SourceDecrypted ContentSource = iota
	// SourceLegacyPlaintext means decryption failed (or no key is configured)
	// and the stored value was returned as-is. Rows written before encryption
	// was enabled land here; this is expected, not an error.
	SourceLegacyPlaintext
)

// Cipher encrypts and decrypts entry content with AES-256-GCM.
// A nil Cipher is valid and stores/returns plaintext unchanged.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a base64-encoded 32-byte key.
func NewCipher(keyBase64 string) (*Cipher, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, errors.New("encryption key must be base64-encoded")
	}
	if len(keyBytes) != 32 {
		return nil, errors.New("encryption key must decode to exactly 32 bytes (256 bits)")
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns base64(nonce || ciphertext).
// With a nil Cipher the plaintext passes through untouched.
func (c *Cipher) Seal(plaintext string) (string, error) {
	if c == nil || plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a stored value, falling back to the raw string when it is not
// ciphertext. The returned ContentSource tells the caller which branch fired.
func (c *Cipher) Open(stored string) (string, ContentSource) {
	if c == nil || stored == "" {
		return stored, SourceLegacyPlaintext
	}

	data, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return stored, SourceLegacyPlaintext
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return stored, SourceLegacyPlaintext
	}

	plaintext, err := c.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return stored, SourceLegacyPlaintext
	}
	return string(plaintext), SourceDecrypted
}
