// Package secretary seals and unseals wallet key material with AES-GCM.
package secretary

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

type Secretary struct {
	aesgcm cipher.AEAD
}

func New(secretKey string) (*Secretary, error) {
	if secretKey == "" {
		return nil, errors.New("secret key cannot be empty")
	}
	key := sha256.Sum256([]byte(secretKey))
	aesblock, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("can't create aes cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(aesblock)
	if err != nil {
		return nil, fmt.Errorf("can't create gcm: %w", err)
	}
	return &Secretary{aesgcm: aesgcm}, nil
}

// Encode seals data with a fresh nonce and returns hex(nonce || ciphertext).
func (s *Secretary) Encode(data string) string {
	nonce := make([]byte, s.aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	sealed := s.aesgcm.Seal(nonce, nonce, []byte(data), nil)
	return hex.EncodeToString(sealed)
}

func (s *Secretary) Decode(msg string) (string, error) {
	raw, err := hex.DecodeString(msg)
	if err != nil {
		return "", err
	}
	if len(raw) < s.aesgcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, ciphertext := raw[:s.aesgcm.NonceSize()], raw[s.aesgcm.NonceSize():]
	opened, err := s.aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(opened), nil
}
