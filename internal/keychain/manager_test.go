// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager()

	_, _, ok, err := m.LoadCredentials()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SaveCredentials("me@example.org", "hunter2"))
	acc, sec, ok, err := m.LoadCredentials()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "me@example.org", acc)
	assert.Equal(t, "hunter2", sec)

	require.NoError(t, m.SaveCredentials("other@example.org", "pw"))
	acc, sec, _, _ = m.LoadCredentials()
	assert.Equal(t, "other@example.org", acc)
	assert.Equal(t, "pw", sec)
}

func TestManagerClearIsIdempotent(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Clear())

	require.NoError(t, m.SaveCredentials("a", "b"))
	require.NoError(t, m.Clear())
	require.NoError(t, m.Clear())

	_, _, ok, err := m.LoadCredentials()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerPartialEntryIsAbsent(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: KeyAccount, Data: []byte("a")}})
	m := NewManagerWithRing(ring)

	_, _, ok, err := m.LoadCredentials()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetManagerIsSingleton(t *testing.T) {
	assert.Same(t, GetManager(), GetManager())
}
