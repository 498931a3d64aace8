package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// multipartOverhead allows for part headers and boundaries around the file
const multipartOverhead = 64 << 10

// ThumbnailHandler handles thumbnail uploads
type ThumbnailHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewThumbnailHandler creates a new ThumbnailHandler
func NewThumbnailHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "thumbnail").Logger(),
	}
}

// UploadThumbnail handles POST /api/admin/thumbnails (multipart field "file")
func (h *ThumbnailHandler) UploadThumbnail(c *gin.Context) {
	// Bound the body before the multipart form is parsed
	limit := h.cfg.Storage.MaxUploadSize + multipartOverhead
	if c.Request.ContentLength > limit {
		h.tooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"status": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Storage.MaxUploadSize {
		h.tooLarge(c)
		return
	}

	// Sniff the type when the client did not send one
	var body io.Reader = file
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(file, head)
		head = head[:n]
		contentType = http.DetectContentType(head)
		body = io.MultiReader(bytes.NewReader(head), file)
	}

	thumbnail, err := h.services.Thumbnail.Upload(c.Request.Context(), header.Filename, contentType, body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("key", thumbnail.Key).
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Thumbnail stored")

	c.JSON(http.StatusCreated, gin.H{"status": "OK", "key": thumbnail.Key, "url": thumbnail.URL})
}

func (h *ThumbnailHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"status": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Storage.MaxUploadSize/(1024*1024)),
	})
}
