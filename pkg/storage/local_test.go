package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	location, err := s.Write(ctx, "a.xlsx", []byte("payload"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(location))

	ok, err := s.Exists(ctx, location)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := s.Read(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, s.Remove(ctx, location))

	ok, err = s.Exists(ctx, location)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Read(ctx, location)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, s.Remove(ctx, location), ErrObjectNotFound)
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Write(ctx, "../outside.xlsx", []byte("x"))
	assert.Error(t, err)

	_, err = s.Read(ctx, "/etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectNotFound)
}
