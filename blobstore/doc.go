// Package blobstore abstracts where hammy libraries are persisted.
//
// A BlobStore holds immutable, named blobs (library segments and manifests) plus one mutable
// pointer blob, CURRENT, naming the live manifest. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process, for tests
//   - LocalStore: local filesystem, atomic rename on Put
//   - s3.Store and s3.DDBCommitStore: Amazon S3, optionally with DynamoDB-backed CURRENT commits
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
