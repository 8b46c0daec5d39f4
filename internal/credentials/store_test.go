// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/keychain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	account string
	secret  string
	calls   int
}

func (f *fakePrompter) Prompt(string) (string, error) {
	f.calls++
	return f.account, nil
}

func (f *fakePrompter) PromptSecret(string) (string, error) {
	return f.secret, nil
}

// noPrompter fails the test if the store falls through to prompting.
type noPrompter struct{ t *testing.T }

func (n noPrompter) Prompt(label string) (string, error) {
	n.t.Fatalf("unexpected prompt %q", label)
	return "", errors.New("unexpected prompt")
}

func (n noPrompter) PromptSecret(label string) (string, error) {
	n.t.Fatalf("unexpected secret prompt %q", label)
	return "", errors.New("unexpected prompt")
}

func seeded(t *testing.T, dir string) {
	t.Helper()
	s := NewStore(dir, nil, &fakePrompter{account: "ana@example.org", secret: "s3cret"})
	_, err := s.LoadOrPrompt(context.Background())
	require.NoError(t, err)
}

func TestFirstUsePromptsAndPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "trigger")
	p := &fakePrompter{account: "ana@example.org", secret: "s3cret"}
	s := NewStore(dir, nil, p)

	c, err := s.LoadOrPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credentials{Account: "ana@example.org", Secret: "s3cret"}, c)
	assert.Equal(t, 1, p.calls)

	for _, name := range []string{KeyFile, RecordFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		if runtime.GOOS != "windows" {
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), name)
		}
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	data, err := os.ReadFile(filepath.Join(dir, RecordFile))
	require.NoError(t, err)
	var rec record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "ana@example.org", rec.Email)
	assert.NotContains(t, rec.PasswordToken, "s3cret")

	key, err := os.ReadFile(filepath.Join(dir, KeyFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), string(key), "key must not be embedded in the record")
}

func TestSecondProcessDecryptsWithoutPrompt(t *testing.T) {
	dir := t.TempDir()
	seeded(t, dir)

	s := NewStore(dir, keychain.NewManager(), noPrompter{t})
	c, err := s.LoadOrPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.org", c.Account)
	assert.Equal(t, "s3cret", c.Secret)
}

func TestCacheAvoidsDisk(t *testing.T) {
	dir := t.TempDir()
	cache := keychain.NewManager()
	s := NewStore(dir, cache, &fakePrompter{account: "ana@example.org", secret: "s3cret"})
	_, err := s.LoadOrPrompt(context.Background())
	require.NoError(t, err)

	// Remove the files behind the store's back; the cached set is still served.
	require.NoError(t, os.Remove(filepath.Join(dir, RecordFile)))
	require.NoError(t, os.Remove(filepath.Join(dir, KeyFile)))

	s2 := NewStore(dir, cache, noPrompter{t})
	c, err := s2.LoadOrPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", c.Secret)
}

func TestResetInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	cache := keychain.NewManager()
	s := NewStore(dir, cache, &fakePrompter{account: "ana@example.org", secret: "old"})
	_, err := s.LoadOrPrompt(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	_, err = os.Stat(filepath.Join(dir, RecordFile))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(filepath.Join(dir, KeyFile))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	p := &fakePrompter{account: "bo@example.org", secret: "new"}
	s2 := NewStore(dir, cache, p)
	c, err := s2.LoadOrPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, Credentials{Account: "bo@example.org", Secret: "new"}, c)
}

func TestResetIsIdempotent(t *testing.T) {
	s := NewStore(t.TempDir(), nil, nil)
	require.NoError(t, s.Reset())
	require.NoError(t, s.Reset())
}

func TestUndecryptableRecordIsHardFailure(t *testing.T) {
	tests := []struct {
		name   string
		damage func(t *testing.T, dir string)
	}{
		{
			name: "corrupted record",
			damage: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, RecordFile), []byte("{not json"), 0o600))
			},
		},
		{
			name: "tampered ciphertext",
			damage: func(t *testing.T, dir string) {
				rec := record{Email: "ana@example.org", PasswordToken: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}
				b, _ := json.Marshal(rec)
				require.NoError(t, os.WriteFile(filepath.Join(dir, RecordFile), b, 0o600))
			},
		},
		{
			name: "missing key",
			damage: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, KeyFile)))
			},
		},
		{
			name: "corrupted key",
			damage: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFile), []byte("short"), 0o600))
			},
		},
		{
			name: "different key",
			damage: func(t *testing.T, dir string) {
				k, err := newKey()
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFile), k, 0o600))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			seeded(t, dir)
			tt.damage(t, dir)

			s := NewStore(dir, keychain.NewManager(), noPrompter{t})
			_, err := s.LoadOrPrompt(context.Background())
			require.Error(t, err)
			assert.True(t, terrors.IsKind(err, terrors.CredentialFailed), "got %v", err)
		})
	}
}

func TestSaveReusesKey(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil, nil)
	require.NoError(t, s.Save(Credentials{Account: "a", Secret: "one"}))
	first, err := os.ReadFile(filepath.Join(dir, KeyFile))
	require.NoError(t, err)

	require.NoError(t, s.Save(Credentials{Account: "b", Secret: "two"}))
	second, err := os.ReadFile(filepath.Join(dir, KeyFile))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	c, found, err := NewStore(dir, nil, nil).Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Credentials{Account: "b", Secret: "two"}, c)
}

func TestNoPrompterAndNoRecord(t *testing.T) {
	s := NewStore(t.TempDir(), nil, nil)
	_, err := s.LoadOrPrompt(context.Background())
	assert.True(t, terrors.IsKind(err, terrors.CredentialFailed))
}

func TestEmptyEmailRejected(t *testing.T) {
	s := NewStore(t.TempDir(), nil, &fakePrompter{secret: "x"})
	_, err := s.LoadOrPrompt(context.Background())
	assert.True(t, terrors.IsKind(err, terrors.CredentialFailed))
}

func TestSealOpen(t *testing.T) {
	encoded, err := newKey()
	require.NoError(t, err)
	key, err := decodeKey(encoded)
	require.NoError(t, err)

	a, err := seal(key, "pw")
	require.NoError(t, err)
	b, err := seal(key, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "nonce must be random")

	got, err := open(key, a)
	require.NoError(t, err)
	assert.Equal(t, "pw", got)

	_, err = open(key, "")
	assert.Error(t, err)
}
