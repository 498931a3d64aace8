package supabase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-jwt", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"u-1","email":"admin@example.com","role":"authenticated"}`)
	}))
	defer server.Close()

	identity, err := NewClient(server.URL, "anon-key").Verify(context.Background(), "user-jwt")
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, "admin@example.com", identity.Email)
}

func TestVerify_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"code":401,"msg":"invalid JWT: token is expired"}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "anon-key").Verify(context.Background(), "expired")

	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid JWT: token is expired", authErr.Message)
}

func TestVerify_ServerErrorIsNotAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "anon-key").Verify(context.Background(), "token")
	require.Error(t, err)

	var authErr *models.AuthError
	assert.False(t, errors.As(err, &authErr))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestVerify_MissingUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "anon-key").Verify(context.Background(), "token")

	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid token", authErr.Message)
}

func TestUpload(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/post_thumbnail/private/abc.png", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, `{"Key":"post_thumbnail/private/abc.png"}`)
	}))
	defer server.Close()

	key, err := NewClient(server.URL, "service-key").Upload(context.Background(), "post_thumbnail", "private/abc.png", "image/png", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "private/abc.png", key)
	assert.Equal(t, "bytes", gotBody)
}

func TestUpload_RunsAsCaller(t *testing.T) {
	var gotAuth, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	ctx := auth.WithCredential(context.Background(), "admin-jwt")
	_, err := NewClient(server.URL, "anon-key").Upload(ctx, "post_thumbnail", "private/a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer admin-jwt", gotAuth)
	assert.Equal(t, "anon-key", gotAPIKey)
}

func TestUpload_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "key").Upload(context.Background(), "b", "k", "", strings.NewReader("x"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "The resource already exists", apiErr.Message)
}

func TestPublicURL(t *testing.T) {
	client := NewClient("https://project.supabase.co/", "key")

	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/post_thumbnail/private/a%20b.png",
		client.PublicURL("post_thumbnail", "private/a b.png"))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{`{"msg":"a"}`, "a"},
		{`{"error_description":"b","error":"x"}`, "b"},
		{`{"error":"c"}`, "c"},
		{`plain text`, "plain text"},
		{``, "request failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, errorMessage([]byte(tt.body)))
	}
}
