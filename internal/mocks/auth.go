package mocks

import (
	"context"
	"sync"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/models"
)

var _ auth.Verifier = (*MockVerifier)(nil)

// MockVerifier accepts the tokens registered in Tokens and rejects all others
type MockVerifier struct {
	mu          sync.Mutex
	Tokens      map[string]*auth.Identity
	VerifyFunc  func(ctx context.Context, credential string) (*auth.Identity, error)
	Credentials []string
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		Tokens: make(map[string]*auth.Identity),
	}
}

// Allow registers a valid token
func (m *MockVerifier) Allow(token, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens[token] = &auth.Identity{UserID: userID, Email: userID + "@example.com"}
}

func (m *MockVerifier) Verify(ctx context.Context, credential string) (*auth.Identity, error) {
	m.mu.Lock()
	m.Credentials = append(m.Credentials, credential)
	fn := m.VerifyFunc
	identity, ok := m.Tokens[credential]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, credential)
	}
	if !ok {
		return nil, &models.AuthError{Message: "invalid JWT"}
	}
	return identity, nil
}

// Calls returns how many times Verify ran
func (m *MockVerifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Credentials)
}
