// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain holds the in-process credential cache.
//
// A Manager keeps the last credential set the credential store loaded so repeated
// loads within one process never touch disk again. It is an explicit object: the
// credential store receives one by reference, tests build their own, and Clear
// invalidates it. Items live in a keyring.Keyring, in memory by default.
package keychain

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// Process-wide manager instance
var (
	globalManager *Manager
	globalOnce    sync.Once
)

// ServiceName identifies our keyring namespace.
const ServiceName = "trigger"

// Keys used for the cached credential set.
const (
	KeyAccount = "credentials_account"
	KeySecret  = "credentials_secret"
)

// Manager provides thread-safe access to the cached credentials.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates an empty manager backed by an in-memory keyring.
func NewManager() *Manager {
	return NewManagerWithRing(keyring.NewArrayKeyring(nil))
}

// NewManagerWithRing creates a manager over an existing keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the process-wide manager, creating it on first call.
func GetManager() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager()
	})
	return globalManager
}

// SaveCredentials replaces the cached credential set.
// This method is thread-safe.
func (m *Manager) SaveCredentials(account, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Set(keyring.Item{Key: KeyAccount, Data: []byte(account)}); err != nil {
		return err
	}
	return m.ring.Set(keyring.Item{Key: KeySecret, Data: []byte(secret)})
}

// LoadCredentials returns the cached credential set. ok is false when nothing
// is cached.
// This method is thread-safe.
func (m *Manager) LoadCredentials() (account, secret string, ok bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, err := m.ring.Get(KeyAccount)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	sec, err := m.ring.Get(KeySecret)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return string(acc.Data), string(sec.Data), true, nil
}

// Clear drops the cached credential set. Clearing an empty cache is not an error.
// This method is thread-safe.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range []string{KeyAccount, KeySecret} {
		if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return err
		}
	}
	return nil
}
