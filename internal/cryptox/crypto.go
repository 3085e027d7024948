// Package cryptox seals small client-side secrets with AES-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const KeySize = 32

var ErrSealedTooShort = errors.New("sealed data too short")

// Sealer encrypts values with a fixed AES-256 key. The nonce is stored in
// front of the ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// SealJSON serializes v to JSON and encrypts it with a fresh random nonce.
func (s *Sealer) SealJSON(v any) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenJSON decrypts data produced by SealJSON and unmarshals it into v.
func (s *Sealer) OpenJSON(data []byte, v any) error {
	n := s.aead.NonceSize()
	if len(data) < n {
		return ErrSealedTooShort
	}

	plaintext, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

// LoadOrCreateKey reads a KeySize key from path. A missing file is created
// with a random key readable only by the owner.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s: want %d bytes, got %d", path, KeySize, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	key = make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}
