package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/models"
)

var _ auth.Verifier = (*Client)(nil)

// userResponse is the subset of the /auth/v1/user payload we use
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verify asks Supabase Auth who owns credential. Rejections come back as
// *models.AuthError carrying the provider's message.
func (c *Client) Verify(ctx context.Context, credential string) (*auth.Identity, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/v1/user", credential, "", nil)
	if err != nil {
		return nil, fmt.Errorf("user request failed: %w", err)
	}

	var user userResponse
	if err := decodeResponse(resp, &user); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, &models.AuthError{Message: apiErr.Message}
		}
		return nil, err
	}
	if user.ID == "" {
		return nil, &models.AuthError{Message: "invalid token"}
	}

	return &auth.Identity{UserID: user.ID, Email: user.Email}, nil
}
