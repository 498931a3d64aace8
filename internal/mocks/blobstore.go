package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/blobstore"
)

var _ blobstore.Store = (*MockBlobStore)(nil)

// MockBlobStore keeps uploaded objects in memory, keyed by "bucket/key"
type MockBlobStore struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	UploadError error
	// Credentials records the caller credential seen by each upload
	Credentials []string
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		Objects: make(map[string][]byte),
	}
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) (string, error) {
	if m.UploadError != nil {
		return "", m.UploadError
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	credential, _ := auth.CredentialFrom(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[bucket+"/"+key] = data
	m.Credentials = append(m.Credentials, credential)
	return key, nil
}

func (m *MockBlobStore) PublicURL(bucket, key string) string {
	return "https://blobs.test/" + bucket + "/" + key
}
