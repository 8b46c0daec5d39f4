// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package credentials persists the single account login for the TRIGGER service.
//
// Two files live in the per-application config directory: a locally generated
// symmetric key (secret.key) and a record (credentials.json) holding the account
// in clear text and the password encrypted under that key. Losing the key makes
// the record permanently undecryptable; that surfaces as a credential error and
// is never treated as "no credentials".
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/keychain"
	"trigger/cli/internal/xdg"

	"github.com/pterm/pterm"
)

const (
	// KeyFile holds the base64 encoded symmetric key.
	KeyFile = "secret.key"
	// RecordFile holds the account and the encrypted password.
	RecordFile = "credentials.json"
)

// Credentials is the account identifier and its secret.
type Credentials struct {
	Account string
	Secret  string
}

// record is the on-disk layout of RecordFile.
type record struct {
	Email         string `json:"email"`
	PasswordToken string `json:"password_token"`
}

// Store loads, prompts for, saves and resets credentials.
type Store struct {
	dir      string
	cache    *keychain.Manager
	prompter Prompter
}

// NewStore builds a store rooted at dir. cache is owned by the caller and may be
// shared between stores; nil gets a private cache.
func NewStore(dir string, cache *keychain.Manager, prompter Prompter) *Store {
	if cache == nil {
		cache = keychain.NewManager()
	}
	return &Store{dir: dir, cache: cache, prompter: prompter}
}

// DefaultStore uses the XDG config dir, the process-wide cache and the terminal.
func DefaultStore() (*Store, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return nil, terrors.Wrap(terrors.CredentialFailed, "resolve config directory", err)
	}
	return NewStore(dir, keychain.GetManager(), NewTerminalPrompter()), nil
}

// Dir returns the directory holding the credential files.
func (s *Store) Dir() string { return s.dir }

func (s *Store) keyPath() string    { return filepath.Join(s.dir, KeyFile) }
func (s *Store) recordPath() string { return filepath.Join(s.dir, RecordFile) }

// LoadOrPrompt returns the cached credentials, else decrypts the stored record,
// else prompts and persists. Only a missing record triggers the prompt; an
// unreadable record or key is a credential_failed error.
func (s *Store) LoadOrPrompt(ctx context.Context) (Credentials, error) {
	if c, ok := s.cached(); ok {
		return c, nil
	}

	c, found, err := s.Load()
	if err != nil {
		return Credentials{}, err
	}
	if found {
		pterm.Info.Println("Credentials loaded.")
		return c, nil
	}

	pterm.Warning.Println("Credentials not found. Please enter them.")
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	c, err = s.prompt()
	if err != nil {
		return Credentials{}, err
	}
	if err := s.Save(c); err != nil {
		return Credentials{}, err
	}
	pterm.Info.Println("Credentials stored.")
	return c, nil
}

// Load decrypts the stored record without prompting. found is false only when
// the record file does not exist.
func (s *Store) Load() (c Credentials, found bool, err error) {
	data, err := os.ReadFile(s.recordPath())
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, true, terrors.Wrap(terrors.CredentialFailed, "read credential record", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Credentials{}, true, terrors.Wrap(terrors.CredentialFailed, "credential record is corrupted", err)
	}

	encodedKey, err := os.ReadFile(s.keyPath())
	if err != nil {
		return Credentials{}, true, terrors.Wrap(terrors.CredentialFailed, "key file is missing or unreadable", err)
	}
	key, err := decodeKey([]byte(strings.TrimSpace(string(encodedKey))))
	if err != nil {
		return Credentials{}, true, terrors.Wrap(terrors.CredentialFailed, "key file is corrupted", err)
	}

	secret, err := open(key, rec.PasswordToken)
	if err != nil {
		return Credentials{}, true, terrors.Wrap(terrors.CredentialFailed, "cannot decrypt stored password", err)
	}

	c = Credentials{Account: rec.Email, Secret: secret}
	if err := s.cache.SaveCredentials(c.Account, c.Secret); err != nil {
		return Credentials{}, true, terrors.Wrap(terrors.CredentialFailed, "cache credentials", err)
	}
	return c, true, nil
}

// Save encrypts and writes c, replacing any existing record. The key is reused
// when a valid one exists.
func (s *Store) Save(c Credentials) error {
	if err := xdg.EnsurePrivateDir(s.dir); err != nil {
		return terrors.Wrap(terrors.CredentialFailed, "create credential directory", err)
	}
	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}

	token, err := seal(key, c.Secret)
	if err != nil {
		return terrors.Wrap(terrors.CredentialFailed, "encrypt password", err)
	}
	data, err := json.Marshal(record{Email: c.Account, PasswordToken: token})
	if err != nil {
		return terrors.Wrap(terrors.CredentialFailed, "encode credential record", err)
	}
	if err := writePrivate(s.recordPath(), data); err != nil {
		return terrors.Wrap(terrors.CredentialFailed, "write credential record", err)
	}
	if err := s.cache.SaveCredentials(c.Account, c.Secret); err != nil {
		return terrors.Wrap(terrors.CredentialFailed, "cache credentials", err)
	}
	return nil
}

// Reset deletes the record and the key and clears the cache. Safe to repeat.
func (s *Store) Reset() error {
	for _, p := range []string{s.recordPath(), s.keyPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return terrors.Wrap(terrors.CredentialFailed, "delete "+filepath.Base(p), err)
		}
	}
	if err := s.cache.Clear(); err != nil {
		return terrors.Wrap(terrors.CredentialFailed, "clear credential cache", err)
	}
	pterm.Info.Println("Credentials deleted.")
	return nil
}

func (s *Store) cached() (Credentials, bool) {
	account, secret, ok, err := s.cache.LoadCredentials()
	if err != nil || !ok {
		return Credentials{}, false
	}
	return Credentials{Account: account, Secret: secret}, true
}

func (s *Store) prompt() (Credentials, error) {
	if s.prompter == nil {
		return Credentials{}, terrors.New(terrors.CredentialFailed, "no stored credentials and no way to prompt for them")
	}
	account, err := s.prompter.Prompt("Email: ")
	if err != nil {
		return Credentials{}, terrors.Wrap(terrors.CredentialFailed, "read email", err)
	}
	if account == "" {
		return Credentials{}, terrors.New(terrors.CredentialFailed, "email is required")
	}
	secret, err := s.prompter.PromptSecret("Password: ")
	if err != nil {
		return Credentials{}, terrors.Wrap(terrors.CredentialFailed, "read password", err)
	}
	return Credentials{Account: account, Secret: secret}, nil
}

// loadOrCreateKey returns the stored key, generating one when absent or unusable.
// Only called from Save, which replaces the record encrypted under any old key.
func (s *Store) loadOrCreateKey() ([]byte, error) {
	if encoded, err := os.ReadFile(s.keyPath()); err == nil {
		if key, err := decodeKey([]byte(strings.TrimSpace(string(encoded)))); err == nil {
			return key, nil
		}
	}
	encoded, err := newKey()
	if err != nil {
		return nil, terrors.Wrap(terrors.CredentialFailed, "generate key", err)
	}
	if err := writePrivate(s.keyPath(), encoded); err != nil {
		return nil, terrors.Wrap(terrors.CredentialFailed, "write key file", err)
	}
	return decodeKey(encoded)
}

// writePrivate writes data owner-only. Failing to tighten permissions on an
// existing file is only a warning.
func writePrivate(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		pterm.Warning.Printfln("Could not restrict permissions on %s: %v", path, err)
	}
	return nil
}
