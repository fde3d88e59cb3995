package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "artifacts"))
	require.NoError(t, err)
	return store
}

func TestLocalStore_PutGetRoundTrip(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "renders/2d/2244.png", []byte("png-bytes"), ContentTypePNG)
	require.NoError(t, err)

	art, err := store.Get(ctx, "renders/2d/2244.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), art.Data)
	assert.Equal(t, ContentTypePNG, art.ContentType)
	assert.Equal(t, int64(9), art.Size)
}

func TestLocalStore_GetMissing(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.Get(context.Background(), "nope.png")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLocalStore_Exists(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Put(ctx, "k", []byte("x"), ContentTypeWikitext)
	require.NoError(t, err)

	ok, err = store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "k", []byte("x"), ContentTypePNG)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))

	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.Put(context.Background(), "../outside.png", []byte("x"), ContentTypePNG)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLocalStore_PresignedURLEmpty(t *testing.T) {
	store := newTestLocalStore(t)

	u, err := store.PresignedURL(context.Background(), "k", 0)
	require.NoError(t, err)
	assert.Empty(t, u)
}
