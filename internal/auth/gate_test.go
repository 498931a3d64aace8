package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_AcceptsValidCredential(t *testing.T) {
	verifier := mocks.NewMockVerifier()
	verifier.Allow("good", "user-1")
	gate := auth.NewGate(verifier, time.Second, zerolog.Nop())

	identity, err := gate.Authorize(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
}

func TestGate_RelaysProviderMessage(t *testing.T) {
	gate := auth.NewGate(mocks.NewMockVerifier(), time.Second, zerolog.Nop())

	_, err := gate.Authorize(context.Background(), "bad")

	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid JWT", authErr.Message)
}

func TestGate_EmptyCredentialIsVerified(t *testing.T) {
	verifier := mocks.NewMockVerifier()
	gate := auth.NewGate(verifier, 0, zerolog.Nop())

	_, err := gate.Authorize(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, []string{""}, verifier.Credentials)
}

func TestGate_ProviderFailureIsRejection(t *testing.T) {
	verifier := mocks.NewMockVerifier()
	verifier.VerifyFunc = func(ctx context.Context, credential string) (*auth.Identity, error) {
		return nil, errors.New(`Get "https://project.supabase.co/auth/v1/user": dial tcp 10.0.0.7:443: connection refused`)
	}
	gate := auth.NewGate(verifier, time.Second, zerolog.Nop())

	identity, err := gate.Authorize(context.Background(), "anything")

	assert.Nil(t, identity)
	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "identity provider unavailable", authErr.Message)
	assert.NotContains(t, err.Error(), "supabase.co")
}

func TestGate_Timeout(t *testing.T) {
	verifier := mocks.NewMockVerifier()
	verifier.VerifyFunc = func(ctx context.Context, credential string) (*auth.Identity, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	gate := auth.NewGate(verifier, 10*time.Millisecond, zerolog.Nop())

	_, err := gate.Authorize(context.Background(), "slow")

	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "identity provider timed out", authErr.Message)
}

func TestGate_NilIdentityIsRejected(t *testing.T) {
	verifier := mocks.NewMockVerifier()
	verifier.VerifyFunc = func(ctx context.Context, credential string) (*auth.Identity, error) {
		return nil, nil
	}
	gate := auth.NewGate(verifier, time.Second, zerolog.Nop())

	_, err := gate.Authorize(context.Background(), "token")

	var authErr *models.AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestGate_NoCaching(t *testing.T) {
	verifier := mocks.NewMockVerifier()
	verifier.Allow("good", "user-1")
	gate := auth.NewGate(verifier, time.Second, zerolog.Nop())

	for i := 0; i < 2; i++ {
		_, err := gate.Authorize(context.Background(), "good")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, verifier.Calls())

	// Revocation takes effect on the next request
	delete(verifier.Tokens, "good")
	_, err := gate.Authorize(context.Background(), "good")
	assert.Error(t, err)
}
