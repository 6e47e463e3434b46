package snapshotdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_fileBackend(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	_, err = backend.Read("nope")
	assert.Equal(t, ErrKeyNotFound, errors.Cause(err))

	require.NoError(t, backend.Write("snap", []byte(`{"a":1}`)))
	data, err := backend.Read("snap")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// overwrite leaves no temp file behind
	require.NoError(t, backend.Write("snap", []byte(`{"a":2}`)))
	_, err = os.Stat(backend.Path("snap") + ".tmp")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, backend.Delete("snap"))
	_, err = backend.Read("snap")
	assert.Equal(t, ErrKeyNotFound, errors.Cause(err))
	assert.NoError(t, backend.Delete("snap"), "deleting a missing key is fine")

	assert.Equal(t, filepath.Base(backend.Path("snap")), "snap.json")
}

func Test_NewFileBackend_unavailable(t *testing.T) {
	dir := t.TempDir()
	// a file where the directory should be makes MkdirAll fail
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewFileBackend(filepath.Join(blocker, "data"))
	assert.Equal(t, ErrStorageUnavailable, errors.Cause(err))
}

func Test_memoryBackend_copies(t *testing.T) {
	backend := NewMemoryBackend()

	data := []byte(`{"a":1}`)
	require.NoError(t, backend.Write("snap", data))
	data[2] = 'x' // caller mutation must not leak in

	got, err := backend.Read("snap")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[2] = 'x' // nor out
	again, err := backend.Read("snap")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))

	assert.Equal(t, "", backend.Path("snap"))
}
