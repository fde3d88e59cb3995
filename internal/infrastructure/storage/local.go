package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

// LocalStore keeps artifacts on the local filesystem, one file per key with a
// sidecar holding the content type.  The CLI uses it so renders land next to
// the user instead of in a bucket.
type LocalStore struct {
	root string
}

var _ ArtifactStore = (*LocalStore)(nil)

type localMeta struct {
	ContentType string `json:"content_type"`
}

// NewLocalStore roots a store at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.InvalidParam("artifact directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create artifact directory")
	}
	return &LocalStore{root: dir}, nil
}

// path maps a key to a file under root, rejecting traversal outside it.
func (s *LocalStore) path(key string) (string, error) {
	if key == "" {
		return "", errors.InvalidParam("artifact key cannot be empty")
	}
	p := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.InvalidParam("artifact key escapes store root").WithDetail("key=" + key)
	}
	return p, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) (*Artifact, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create artifact subdirectory")
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to write artifact")
	}

	meta, _ := json.Marshal(localMeta{ContentType: contentType})
	if err := os.WriteFile(p+".meta", meta, 0o644); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to write artifact metadata")
	}

	return &Artifact{
		Key:          key,
		Data:         data,
		ContentType:  contentType,
		Size:         int64(len(data)),
		LastModified: time.Now().UTC(),
	}, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (*Artifact, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("artifact not found").WithDetail("key=" + key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read artifact")
	}

	var meta localMeta
	if raw, err := os.ReadFile(p + ".meta"); err == nil {
		_ = json.Unmarshal(raw, &meta)
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat artifact")
	}

	return &Artifact{
		Key:          key,
		Data:         data,
		ContentType:  meta.ContentType,
		Size:         info.Size(),
		LastModified: info.ModTime().UTC(),
	}, nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat artifact")
	}
	return true, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to delete artifact")
	}
	_ = os.Remove(p + ".meta")
	return nil
}

// PresignedURL has no meaning for local files; callers get the empty string
// and fall back to serving bytes directly.
func (s *LocalStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", nil
}
