package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreLifecycle(t *testing.T, store BlobStore) {
	ctx := context.Background()

	// 1. Create a blob
	data := []byte("hello world, this is a test blob for hammy")
	w, err := store.Create(ctx, "segments/lib-001.hmy")
	require.NoError(t, err)
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, "segments/lib-001.hmy")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err = blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	_, err = blob.ReadAt(ctx, make([]byte, 10), int64(len(data))-3)
	assert.ErrorIs(t, err, io.EOF)

	// 3. ReadRange
	rc, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "this", string(got))
	require.NoError(t, blob.Close())

	// 4. Put + List
	require.NoError(t, store.Put(ctx, "manifests/lib-001.json", []byte(`{}`)))
	require.NoError(t, store.Put(ctx, CurrentName, []byte("manifests/lib-001.json")))

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{CurrentName, "manifests/lib-001.json", "segments/lib-001.hmy"}, all)

	segs, err := store.List(ctx, "segments/")
	require.NoError(t, err)
	assert.Equal(t, []string{"segments/lib-001.hmy"}, segs)

	// 5. ReadAll
	cur, err := ReadAll(ctx, store, CurrentName, nil)
	require.NoError(t, err)
	assert.Equal(t, "manifests/lib-001.json", string(cur))

	var wrapped bool
	_, err = ReadAll(ctx, store, CurrentName, func(r io.Reader) io.Reader {
		wrapped = true
		return r
	})
	require.NoError(t, err)
	assert.True(t, wrapped)

	// 6. Overwrite
	require.NoError(t, store.Put(ctx, CurrentName, []byte("manifests/lib-002.json")))
	cur, err = ReadAll(ctx, store, CurrentName, nil)
	require.NoError(t, err)
	assert.Equal(t, "manifests/lib-002.json", string(cur))

	// 7. Delete
	require.NoError(t, store.Delete(ctx, "segments/lib-001.hmy"))
	require.NoError(t, store.Delete(ctx, "segments/lib-001.hmy"))
	_, err = store.Open(ctx, "segments/lib-001.hmy")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ReadAll(ctx, store, "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testStoreLifecycle(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("ACGT")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'T'

	got, err := ReadAll(ctx, store, "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(got))
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "empty", nil))
	got, err := ReadAll(ctx, store, "empty", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalStore_NoTempLeftovers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, store.Put(ctx, "a/b", bytes.Repeat([]byte{1}, 1024)))

	entries, err := os.ReadDir(filepath.Join(dir, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Name())
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
