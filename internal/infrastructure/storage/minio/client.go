// Package minio implements the artifact store on S3-compatible object
// storage.
package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/internal/infrastructure/storage"
	"github.com/wikimol/wikimolgen/pkg/errors"
)

// API is the subset of the minio client the store uses, extracted so tests
// can substitute a fake.
type API interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// Store persists artifacts in a single bucket.
type Store struct {
	client        API
	bucket        string
	presignExpiry time.Duration
	logger        logging.Logger
}

var _ storage.ArtifactStore = (*Store)(nil)

// NewStore connects to object storage and ensures the artifact bucket
// exists.
func NewStore(cfg config.MinIOConfig, log logging.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create object storage client")
	}

	s := newStore(client, cfg.Bucket, cfg.PresignExpiry, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("object storage connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket))
	return s, nil
}

func newStore(client API, bucket string, presignExpiry time.Duration, log logging.Logger) *Store {
	return &Store{
		client:        client,
		bucket:        bucket,
		presignExpiry: presignExpiry,
		logger:        log.Named("storage"),
	}
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to reach object storage")
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to create artifact bucket")
		}
		s.logger.Info("created artifact bucket", logging.String("bucket", s.bucket))
	}
	return nil
}

// Put uploads an artifact and returns its stored form.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (*storage.Artifact, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to upload artifact").
			WithDetail("key=" + key)
	}
	return &storage.Artifact{
		Key:          key,
		Data:         data,
		ContentType:  contentType,
		Size:         info.Size,
		ETag:         info.ETag,
		LastModified: time.Now().UTC(),
	}, nil
}

// Get downloads an artifact.  A missing key yields a not-found error.
func (s *Store) Get(ctx context.Context, key string) (*storage.Artifact, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to open artifact").
			WithDetail("key=" + key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errors.NotFound("artifact not found").WithDetail("key=" + key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read artifact")
	}

	stat, err := obj.Stat()
	if err != nil {
		if isNoSuchKey(err) {
			return nil, errors.NotFound("artifact not found").WithDetail("key=" + key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat artifact")
	}

	return &storage.Artifact{
		Key:          key,
		Data:         data,
		ContentType:  stat.ContentType,
		Size:         stat.Size,
		ETag:         stat.ETag,
		LastModified: stat.LastModified,
	}, nil
}

// Exists reports whether an artifact is stored under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat artifact")
	}
	return true, nil
}

// Delete removes an artifact.  Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to delete artifact")
	}
	return nil
}

// PresignedURL returns a time-limited download URL for an artifact.
func (s *Store) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = s.presignExpiry
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to presign artifact URL")
	}
	return u.String(), nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
