package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/blobstore"
)

var _ blobstore.Store = (*Client)(nil)

// Upload stores r under bucket/key and returns key. The request runs as the
// caller whose credential is on ctx (see auth.WithCredential), so the bucket's
// row level security policies apply to the signed-in admin. Without one it
// falls back to the project key.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bearer := c.apiKey
	if credential, ok := auth.CredentialFrom(ctx); ok {
		bearer = credential
	}

	resp, err := c.doRequest(ctx, http.MethodPost, objectPath("/storage/v1/object", bucket, key), bearer, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	if err := decodeResponse(resp, nil); err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}

	return key, nil
}

// PublicURL returns the public object URL for bucket/key
func (c *Client) PublicURL(bucket, key string) string {
	return c.baseURL + objectPath("/storage/v1/object/public", bucket, key)
}

func objectPath(prefix, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return prefix + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
