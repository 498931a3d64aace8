package auth

import (
	"context"
	"errors"
	"time"

	"github.com/blog-platform-api/internal/models"
	"github.com/rs/zerolog"
)

// Identity is the verified caller returned by the identity provider
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Verifier validates a bearer credential against the identity provider
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// Gate authorizes admin requests. Every call re-verifies the credential.
type Gate struct {
	verifier Verifier
	timeout  time.Duration
	log      zerolog.Logger
}

// NewGate creates a Gate. A zero timeout leaves the caller's deadline in place.
func NewGate(verifier Verifier, timeout time.Duration, log zerolog.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		timeout:  timeout,
		log:      log.With().Str("component", "auth_gate").Logger(),
	}
}

// Authorize passes credential to the identity provider and returns the caller
// identity, or a *models.AuthError if the credential is rejected or the
// provider cannot be reached. Only the provider's rejection message is relayed;
// transport failures are logged and reported generically. An empty credential
// is verified like any other.
func (g *Gate) Authorize(ctx context.Context, credential string) (*Identity, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	identity, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		var authErr *models.AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			g.log.Warn().Err(err).Msg("Identity provider timed out")
			return nil, &models.AuthError{Message: "identity provider timed out"}
		}
		g.log.Warn().Err(err).Msg("Credential verification failed")
		return nil, &models.AuthError{Message: "identity provider unavailable"}
	}
	if identity == nil {
		return nil, &models.AuthError{Message: "identity provider returned no user"}
	}

	return identity, nil
}
