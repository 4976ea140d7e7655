package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/hammy/blobstore"
	"github.com/hupe1980/hammy/blobstore/minio"
	"github.com/hupe1980/hammy/blobstore/s3"
)

// storeURI is a parsed -store value.
//
//	./panels                         local directory
//	file:///data/panels              local directory
//	s3://bucket/prefix               Amazon S3
//	minio://host:9000/bucket/prefix  MinIO over HTTPS
//	minio+http://host:9000/bucket    MinIO over plain HTTP
type storeURI struct {
	Scheme   string
	Endpoint string
	Bucket   string
	Prefix   string
	Path     string
	Raw      string
}

func parseStoreURI(raw string) (storeURI, error) {
	if raw == "" {
		return storeURI{}, fmt.Errorf("missing -store")
	}
	if !strings.Contains(raw, "://") {
		return storeURI{Scheme: "file", Path: raw, Raw: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return storeURI{}, fmt.Errorf("invalid store %q: %w", raw, err)
	}
	su := storeURI{Scheme: u.Scheme, Raw: raw}
	rest := strings.Trim(u.Path, "/")

	switch u.Scheme {
	case "file":
		su.Path = u.Path
		if su.Path == "" {
			return storeURI{}, fmt.Errorf("invalid store %q: empty path", raw)
		}
	case "s3":
		su.Bucket = u.Host
		su.Prefix = rest
	case "minio", "minio+http":
		su.Endpoint = u.Host
		su.Bucket, su.Prefix, _ = strings.Cut(rest, "/")
	default:
		return storeURI{}, fmt.Errorf("invalid store %q: unsupported scheme %q", raw, u.Scheme)
	}
	if su.Scheme != "file" && su.Bucket == "" {
		return storeURI{}, fmt.Errorf("invalid store %q: missing bucket", raw)
	}
	return su, nil
}

// openStore builds the blob store for su. ddbTable enables DynamoDB commits for s3 stores.
func openStore(ctx context.Context, su storeURI, ddbTable string) (blobstore.BlobStore, error) {
	switch su.Scheme {
	case "file":
		if ddbTable != "" {
			return nil, fmt.Errorf("-ddb-table requires an s3:// store")
		}
		return blobstore.NewLocalStore(su.Path), nil
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		store := s3.NewStore(awss3.NewFromConfig(cfg), su.Bucket, su.Prefix)
		if ddbTable == "" {
			return store, nil
		}
		return s3.NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg), ddbTable, su.Raw), nil
	case "minio", "minio+http":
		if ddbTable != "" {
			return nil, fmt.Errorf("-ddb-table requires an s3:// store")
		}
		client, err := minio.NewClient(su.Endpoint, su.Scheme == "minio")
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minio.NewStore(client, su.Bucket, su.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported scheme %q", su.Scheme)
	}
}
