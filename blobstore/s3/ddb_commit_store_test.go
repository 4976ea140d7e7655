package s3

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/hammy/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock for testing.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue // key -> item
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseURI := params.Item["base_uri"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	key := baseURI + ":" + version

	if aws.ToString(params.ConditionExpression) == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	baseURI := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["base_uri"].(*types.AttributeValueMemberS).Value == baseURI {
			items = append(items, item)
		}
	}

	version := func(item map[string]types.AttributeValue) uint64 {
		v, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		return v
	}
	sort.Slice(items, func(i, j int) bool { return version(items[i]) > version(items[j]) })

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	return &dynamodb.QueryOutput{Items: items}, nil
}

type failingDDBClient struct {
	err error
}

func (f failingDDBClient) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return nil, f.err
}

func (f failingDDBClient) Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func newTestDDBCommitStore(ddb DDBClient, baseURI string) *DDBCommitStore {
	return NewDDBCommitStore(blobstore.NewMemoryStore(), ddb, "hammy-commits", baseURI)
}

func readCurrent(t *testing.T, store blobstore.BlobStore) string {
	t.Helper()
	data, err := blobstore.ReadAll(context.Background(), store, blobstore.CurrentName, nil)
	require.NoError(t, err)
	return string(data)
}

func TestDDBCommitStore_FirstCommit(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(ctx, blobstore.CurrentName, []byte("manifests/000001.json")))

	blob, err := store.Open(ctx, blobstore.CurrentName)
	require.NoError(t, err)
	defer func() { _ = blob.Close() }()

	buf := make([]byte, 100)
	n, _ := blob.ReadAt(ctx, buf, 0)
	assert.Equal(t, "manifests/000001.json", string(buf[:n]))

	version, path, err := store.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, "manifests/000001.json", path)
}

func TestDDBCommitStore_MultipleCommits(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Put(ctx, blobstore.CurrentName, fmt.Appendf(nil, "manifests/%06d.json", i)))
	}

	assert.Equal(t, "manifests/000012.json", readCurrent(t, store))

	version, _, err := store.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), version)
}

func TestDDBCommitStore_ConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(ctx, blobstore.CurrentName, []byte("manifests/000001.json")))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := range 5 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			err := store.Put(ctx, blobstore.CurrentName, fmt.Appendf(nil, "manifests/%06d.json", id+2))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrConcurrentModification):
				conflicts++
			case err == nil:
				successes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()
	assert.Positive(t, successes, "at least one writer should succeed")
	assert.Equal(t, 5, successes+conflicts)
}

func TestDDBCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	_, err := store.Open(context.Background(), blobstore.CurrentName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDDBCommitStore_IsolatedNamespaces(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()

	store1 := newTestDDBCommitStore(ddb, "s3://bucket-a/path/")
	store2 := newTestDDBCommitStore(ddb, "s3://bucket-b/path/")

	require.NoError(t, store1.Put(ctx, blobstore.CurrentName, []byte("manifests/a.json")))
	require.NoError(t, store2.Put(ctx, blobstore.CurrentName, []byte("manifests/b.json")))

	assert.Equal(t, "manifests/a.json", readCurrent(t, store1))
	assert.Equal(t, "manifests/b.json", readCurrent(t, store2))
}

func TestDDBCommitStore_DelegatesOtherBlobs(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(ctx, "segments/000001.hmy", []byte("payload")))

	w, err := store.Create(ctx, "segments/000002.hmy")
	require.NoError(t, err)
	_, err = w.Write([]byte("more"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "segments/")
	require.NoError(t, err)
	assert.Equal(t, []string{"segments/000001.hmy", "segments/000002.hmy"}, names)

	data, err := blobstore.ReadAll(ctx, store, "segments/000001.hmy", nil)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(ctx, "segments/000001.hmy"))
	_, err = store.Open(ctx, "segments/000001.hmy")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDDBCommitStore_PutError(t *testing.T) {
	boom := errors.New("throttled")
	store := newTestDDBCommitStore(failingDDBClient{err: boom}, "s3://test-bucket/test/")

	err := store.Put(context.Background(), blobstore.CurrentName, []byte("manifests/000001.json"))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrConcurrentModification)
}

func TestVirtualCurrentBlob_ReadRange(t *testing.T) {
	b := &virtualCurrentBlob{content: []byte("manifests/000001.json")}
	assert.Equal(t, int64(21), b.Size())

	rc, err := b.ReadRange(context.Background(), 10, 6)
	require.NoError(t, err)
	buf := make([]byte, 6)
	n, _ := rc.Read(buf)
	assert.Equal(t, "000001", string(buf[:n]))
	require.NoError(t, rc.Close())
}
