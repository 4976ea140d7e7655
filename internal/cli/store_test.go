package cli

import (
	"context"
	"testing"

	"github.com/hupe1980/hammy/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStoreURI(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    storeURI
		wantErr string
	}{
		{name: "relative path", raw: "./panels", want: storeURI{Scheme: "file", Path: "./panels", Raw: "./panels"}},
		{name: "file uri", raw: "file:///data/panels", want: storeURI{Scheme: "file", Path: "/data/panels", Raw: "file:///data/panels"}},
		{name: "s3", raw: "s3://bucket/a/b/", want: storeURI{Scheme: "s3", Bucket: "bucket", Prefix: "a/b", Raw: "s3://bucket/a/b/"}},
		{name: "s3 bucket only", raw: "s3://bucket", want: storeURI{Scheme: "s3", Bucket: "bucket", Raw: "s3://bucket"}},
		{
			name: "minio",
			raw:  "minio://localhost:9000/bucket/libs",
			want: storeURI{Scheme: "minio", Endpoint: "localhost:9000", Bucket: "bucket", Prefix: "libs", Raw: "minio://localhost:9000/bucket/libs"},
		},
		{
			name: "minio plain http",
			raw:  "minio+http://localhost:9000/bucket",
			want: storeURI{Scheme: "minio+http", Endpoint: "localhost:9000", Bucket: "bucket", Raw: "minio+http://localhost:9000/bucket"},
		},
		{name: "empty", raw: "", wantErr: "missing -store"},
		{name: "empty file path", raw: "file://", wantErr: "empty path"},
		{name: "s3 missing bucket", raw: "s3:///prefix", wantErr: "missing bucket"},
		{name: "minio missing bucket", raw: "minio://localhost:9000", wantErr: "missing bucket"},
		{name: "unsupported", raw: "gs://bucket", wantErr: "unsupported scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStoreURI(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenStore_Local(t *testing.T) {
	dir := t.TempDir()
	store, err := openStore(context.Background(), storeURI{Scheme: "file", Path: dir}, "")
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)

	_, err = openStore(context.Background(), storeURI{Scheme: "file", Path: dir}, "table")
	assert.ErrorContains(t, err, "-ddb-table requires an s3:// store")
}

func TestOpenStore_MinIO(t *testing.T) {
	store, err := openStore(context.Background(), storeURI{Scheme: "minio+http", Endpoint: "localhost:9000", Bucket: "b"}, "")
	require.NoError(t, err)
	assert.NotNil(t, store)
}
