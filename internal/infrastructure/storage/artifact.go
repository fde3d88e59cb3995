// Package storage persists render artifacts (PNG depictions, wiki markup,
// cached SDF records) behind a small store interface with object-storage and
// local-filesystem implementations.
package storage

import (
	"context"
	"time"
)

// Artifact content types.
const (
	ContentTypePNG      = "image/png"
	ContentTypeSVG      = "image/svg+xml"
	ContentTypeSDF      = "chemical/x-mdl-sdfile"
	ContentTypeWikitext = "text/plain; charset=utf-8"
)

// Artifact is a stored render output.
type Artifact struct {
	Key          string
	Data         []byte
	ContentType  string
	Size         int64
	ETag         string
	LastModified time.Time
}

// ArtifactStore is the persistence port for render outputs.  The HTTP server
// backs it with object storage; the CLI backs it with a local directory.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*Artifact, error)
	Get(ctx context.Context, key string) (*Artifact, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	// PresignedURL returns a time-limited download URL, or an empty string
	// when the backend has no URL concept (local filesystem).
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
