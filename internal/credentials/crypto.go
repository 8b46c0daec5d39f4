// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var errKeySize = errors.New("key has wrong length")

// newKey generates a fresh symmetric key, base64 (URL alphabet) encoded for storage.
func newKey() ([]byte, error) {
	raw := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	out := make([]byte, base64.URLEncoding.EncodedLen(len(raw)))
	base64.URLEncoding.Encode(out, raw)
	return out, nil
}

// decodeKey parses the stored key encoding.
func decodeKey(encoded []byte) ([]byte, error) {
	raw := make([]byte, base64.URLEncoding.DecodedLen(len(encoded)))
	n, err := base64.URLEncoding.Decode(raw, encoded)
	if err != nil {
		return nil, err
	}
	if n != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: %d bytes", errKeySize, n)
	}
	return raw[:n], nil
}

// seal encrypts plaintext with XChaCha20-Poly1305. The random nonce is prepended and
// the whole token is base64 encoded.
func seal(key []byte, plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// open reverses seal. Any tampering, truncation or key mismatch is an error.
func open(key []byte, token string) (string, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	sealed, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return "", errors.New("ciphertext too short")
	}
	nonce, ct := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
