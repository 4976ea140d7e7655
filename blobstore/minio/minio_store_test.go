package minio

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/hammy/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("dial tcp: connection refused")))
}

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "libraries/")
	assert.Equal(t, "libraries/CURRENT", s.key(blobstore.CurrentName))
	assert.Equal(t, "libraries/segments/000001.hmy", s.key("segments/000001.hmy"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("HAMMY_MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	if os.Getenv("MINIO_ACCESS_KEY") == "" {
		t.Setenv("MINIO_ACCESS_KEY", "minioadmin")
		t.Setenv("MINIO_SECRET_KEY", "minioadmin")
	}
	bucket := "test-hammy"

	client, err := NewClient(endpoint, false)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("ACGTACGTTTGACCA")
	require.NoError(t, store.Put(ctx, "segments/test.hmy", data))

	blob, err := store.Open(ctx, "segments/test.hmy")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	short := make([]byte, 8)
	n, err = blob.ReadAt(ctx, short, 12)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "CCA", string(short[:n]))

	rc, err := blob.ReadRange(ctx, 4, 4)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "segments/")
	require.NoError(t, err)
	assert.Contains(t, names, "segments/test.hmy")

	require.NoError(t, store.Delete(ctx, "segments/test.hmy"))
	_, err = store.Open(ctx, "segments/test.hmy")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	wb, err := store.Create(ctx, "stream.hmy")
	require.NoError(t, err)
	_, err = wb.Write([]byte("streamed data"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	blob3, err := store.Open(ctx, "stream.hmy")
	require.NoError(t, err)
	assert.Equal(t, int64(13), blob3.Size())
	require.NoError(t, blob3.Close())

	_ = store.Delete(ctx, "stream.hmy")
}
