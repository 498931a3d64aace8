package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Upload(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:8080/")

	key, err := store.Upload(context.Background(), "post_thumbnail", "private/a.png", "image/png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "private/a.png", key)

	written, err := os.ReadFile(filepath.Join(dir, "post_thumbnail", "private", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(written))
}

func TestLocalStore_UploadExistingKey(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")
	ctx := context.Background()

	_, err := store.Upload(ctx, "b", "k.png", "image/png", strings.NewReader("one"))
	require.NoError(t, err)

	_, err = store.Upload(ctx, "b", "k.png", "image/png", strings.NewReader("two"))
	assert.Error(t, err)
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")

	for _, tc := range []struct{ bucket, key string }{
		{"b", "../../etc/passwd"},
		{"b", ""},
		{"", "k"},
		{"a/b", "k"},
	} {
		_, err := store.Upload(context.Background(), tc.bucket, tc.key, "", strings.NewReader("x"))
		assert.Error(t, err, "bucket=%q key=%q", tc.bucket, tc.key)
	}
}

func TestLocalStore_PublicURL(t *testing.T) {
	store := NewLocalStore("/srv/uploads", "http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080/uploads/post_thumbnail/private/a%20b.png",
		store.PublicURL("post_thumbnail", "private/a b.png"))
}
