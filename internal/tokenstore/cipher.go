package tokenstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// sealer provides authenticated encryption for stored tokens. Ciphertexts
// carry an integrity tag, so a record written under a different key or
// tampered with on disk fails to open instead of misdecrypting.
type sealer struct {
	aead cipher.AEAD
}

// newSealer creates an AES-256-GCM sealer for the given 32-byte key.
func newSealer(key []byte) (*sealer, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("sealer key must be %d bytes, got %d", keyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &sealer{aead: aead}, nil
}

// seal encrypts plaintext and returns base64url(nonce || ciphertext).
func (s *sealer) seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// open reverses seal. It fails on undecodable input, truncated ciphertext,
// a wrong key, or a failed integrity check.
func (s *sealer) open(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}

	n := s.aead.NonceSize()
	if len(raw) < n {
		return "", errors.New("ciphertext shorter than nonce")
	}

	plaintext, err := s.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", fmt.Errorf("opening ciphertext: %w", err)
	}
	return string(plaintext), nil
}
