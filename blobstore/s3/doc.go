// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Store covers plain S3 buckets. S3 has no compare-and-swap, so two writers committing
// CURRENT at the same time can silently overwrite each other. DDBCommitStore closes that gap by
// keeping the CURRENT pointer as versioned items in a DynamoDB table written with conditional
// puts; every other blob goes to the wrapped store.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	st := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "hammy/")
//	cs := s3.NewDDBCommitStore(st, dynamodb.NewFromConfig(cfg), "hammy-commits", "s3://my-bucket/hammy/")
package s3
