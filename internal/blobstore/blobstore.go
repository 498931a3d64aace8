package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store is key-addressed storage for thumbnail images
type Store interface {
	Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) (string, error)
	PublicURL(bucket, key string) string
}

// LocalPathPrefix is the URL prefix under which LocalStore objects are served
const LocalPathPrefix = "/uploads"

// LocalStore keeps objects on disk under dir/bucket/key
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a filesystem-backed store. baseURL is the public
// origin of this server, used to build object URLs.
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload writes r to dir/bucket/key
func (s *LocalStore) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) (string, error) {
	target, err := s.objectPath(bucket, key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return key, nil
}

// PublicURL returns the URL the router serves bucket/key from
func (s *LocalStore) PublicURL(bucket, key string) string {
	u := url.URL{Path: path.Join(LocalPathPrefix, bucket, key)}
	return s.baseURL + u.EscapedPath()
}

// objectPath resolves bucket/key inside dir, rejecting keys that escape it
func (s *LocalStore) objectPath(bucket, key string) (string, error) {
	clean := path.Clean("/" + bucket + "/" + key)
	if key == "" || bucket == "" || strings.Contains(bucket, "/") || !strings.HasPrefix(clean, "/"+bucket+"/") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
