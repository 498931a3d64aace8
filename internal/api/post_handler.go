package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// ListPosts handles GET /api/posts and GET /api/admin/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK", "posts": posts})
}

// GetPost handles GET /api/posts/:id and GET /api/admin/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.services.Post.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK", "post": post})
}

// CreatePost handles POST /api/admin/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid request body"})
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	event := h.log.Info().Int64("post_id", post.ID)
	if identity := identityFrom(c); identity != nil {
		event = event.Str("user_id", identity.UserID)
	}
	event.Msg("Post created by admin")

	c.JSON(http.StatusCreated, gin.H{"status": "OK", "message": "created", "id": post.ID})
}

// UpdatePost handles PUT /api/admin/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid request body"})
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK", "post": post})
}

// SetPostCategories handles PUT /api/admin/posts/:id/categories
func (h *PostHandler) SetPostCategories(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.CategorySetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid request body"})
		return
	}

	post, err := h.services.Post.SetCategories(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK", "post": post})
}

// DeletePost handles DELETE /api/admin/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
