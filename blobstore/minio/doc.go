// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible systems such as Ceph, SeaweedFS and Garage,
// without pulling in the AWS SDK credential chain.
//
//	client, err := minio.NewClient("localhost:9000", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := minio.NewStore(client, "my-bucket", "libraries/")
//	err = lib.Save(ctx, store)
//
// NewClient reads credentials from MINIO_ACCESS_KEY/MINIO_SECRET_KEY or the AWS_* variables.
package minio
