package minio

import (
	"context"
	"io"
	"net/url"
	"testing"
	"time"

	miniosdk "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// fakeAPI implements API in memory.  GetObject is not exercised here because
// the SDK's Object type cannot be constructed outside a live connection.
type fakeAPI struct {
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		buckets: map[string]bool{},
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (f *fakeAPI) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeAPI) MakeBucket(ctx context.Context, bucket string, opts miniosdk.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeAPI) PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, opts miniosdk.PutObjectOptions) (miniosdk.UploadInfo, error) {
	if f.failPut {
		return miniosdk.UploadInfo{}, io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return miniosdk.UploadInfo{}, err
	}
	f.objects[bucket+"/"+name] = data
	f.types[bucket+"/"+name] = opts.ContentType
	return miniosdk.UploadInfo{Bucket: bucket, Key: name, Size: int64(len(data)), ETag: "fake-etag"}, nil
}

func (f *fakeAPI) GetObject(ctx context.Context, bucket, name string, opts miniosdk.GetObjectOptions) (*miniosdk.Object, error) {
	return nil, io.ErrUnexpectedEOF
}

func (f *fakeAPI) StatObject(ctx context.Context, bucket, name string, opts miniosdk.StatObjectOptions) (miniosdk.ObjectInfo, error) {
	data, ok := f.objects[bucket+"/"+name]
	if !ok {
		return miniosdk.ObjectInfo{}, miniosdk.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	}
	return miniosdk.ObjectInfo{Key: name, Size: int64(len(data)), ContentType: f.types[bucket+"/"+name]}, nil
}

func (f *fakeAPI) RemoveObject(ctx context.Context, bucket, name string, opts miniosdk.RemoveObjectOptions) error {
	delete(f.objects, bucket+"/"+name)
	return nil
}

func (f *fakeAPI) PresignedGetObject(ctx context.Context, bucket, name string, expiry time.Duration, params url.Values) (*url.URL, error) {
	return url.Parse("https://storage.example/" + bucket + "/" + name + "?expires=" + expiry.String())
}

func newTestStore(t *testing.T) (*Store, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	return newStore(api, "wikimol-renders", time.Hour, logging.NewNopLogger()), api
}

func TestStore_EnsureBucketCreatesMissing(t *testing.T) {
	store, api := newTestStore(t)
	require.NoError(t, store.ensureBucket(context.Background()))
	assert.True(t, api.buckets["wikimol-renders"])

	// Idempotent when the bucket already exists.
	require.NoError(t, store.ensureBucket(context.Background()))
}

func TestStore_PutAndExists(t *testing.T) {
	store, api := newTestStore(t)
	ctx := context.Background()

	art, err := store.Put(ctx, "renders/2d/2244.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "renders/2d/2244.png", art.Key)
	assert.Equal(t, int64(9), art.Size)
	assert.Equal(t, "image/png", api.types["wikimol-renders/renders/2d/2244.png"])

	ok, err := store.Exists(ctx, "renders/2d/2244.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "renders/2d/9999.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutFailure(t *testing.T) {
	store, api := newTestStore(t)
	api.failPut = true

	_, err := store.Put(context.Background(), "k", []byte("x"), "image/png")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStorageError))
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "k", []byte("x"), "image/png")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "k"))

	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PresignedURL(t *testing.T) {
	store, _ := newTestStore(t)

	u, err := store.PresignedURL(context.Background(), "renders/2d/2244.png", 0)
	require.NoError(t, err)
	assert.Contains(t, u, "wikimol-renders/renders/2d/2244.png")
	assert.Contains(t, u, "1h0m0s") // zero expiry falls back to the configured default
}
