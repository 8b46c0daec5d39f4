// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "unknown_table: table 'x' not found", New(UnknownTable, "table 'x' not found").Error())

	wrapped := Wrap(CredentialFailed, "decrypt", stderrors.New("bad tag"))
	assert.Equal(t, "credential_failed: decrypt: bad tag", wrapped.Error())
}

func TestKindClassification(t *testing.T) {
	inner := New(InvalidColumn, "bad column")
	outer := fmt.Errorf("building query: %w", inner)

	assert.Equal(t, InvalidColumn, KindOf(outer))
	assert.True(t, IsKind(outer, InvalidColumn))
	assert.False(t, IsKind(outer, UnknownTable))
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.False(t, IsKind(nil, InvalidColumn))
}

func TestIsKindNested(t *testing.T) {
	err := Wrap(CredentialFailed, "load credentials", New(TransportFailed, "offline"))
	assert.True(t, IsKind(err, CredentialFailed))
	assert.True(t, IsKind(err, TransportFailed))
	assert.Equal(t, CredentialFailed, KindOf(err))
}

func TestAsRequestError(t *testing.T) {
	err := Wrap(RequestFailed, "query error", &RequestError{StatusCode: 403, Body: "forbidden"})

	re, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, 403, re.StatusCode)
	assert.Equal(t, "forbidden", re.Body)
	assert.Equal(t, "request_failed: query error: status 403: forbidden", err.Error())

	_, ok = AsRequestError(New(RequestFailed, "no status"))
	assert.False(t, ok)
}
