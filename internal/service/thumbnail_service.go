package service

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blog-platform-api/internal/blobstore"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// thumbnailKeyPrefix matches the folder thumbnails were always stored under
const thumbnailKeyPrefix = "private/"

var imageExtRegex = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// thumbnailService is the concrete implementation of ThumbnailService
type thumbnailService struct {
	blobs  blobstore.Store
	bucket string
	log    zerolog.Logger
}

func newThumbnailService(blobs blobstore.Store, bucket string, log zerolog.Logger) *thumbnailService {
	return &thumbnailService{
		blobs:  blobs,
		bucket: bucket,
		log:    log.With().Str("service", "thumbnail").Logger(),
	}
}

// Upload stores an image under a fresh private/<uuid> key
func (s *thumbnailService) Upload(ctx context.Context, filename, contentType string, r io.Reader) (*models.Thumbnail, error) {
	if err := validation.ValidateImage(contentType); err != nil {
		return nil, err
	}

	key := thumbnailKeyPrefix + uuid.New().String() + imageExt(filename)

	stored, err := s.blobs.Upload(ctx, s.bucket, key, contentType, r)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("bucket", s.bucket).Str("key", stored).Msg("Thumbnail uploaded")

	return &models.Thumbnail{
		Key: stored,
		URL: s.blobs.PublicURL(s.bucket, stored),
	}, nil
}

// imageExt returns the lowercased extension of filename, or "" if it is not plain alphanumeric
func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtRegex.MatchString(ext) {
		return ""
	}
	return ext
}
