package service

import (
	"context"
	"io"

	"github.com/blog-platform-api/internal/blobstore"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// PostService defines the interface for post operations
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, in *models.PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in *models.PostInput) (*models.Post, error)
	SetCategories(ctx context.Context, id int64, in *models.CategorySetInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, in *models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id int64, in *models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// ThumbnailService defines the interface for thumbnail uploads
type ThumbnailService interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (*models.Thumbnail, error)
}

// Services holds all service interfaces
type Services struct {
	Post      PostService
	Category  CategoryService
	Thumbnail ThumbnailService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, blobs blobstore.Store, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Post:      newPostService(repos.Post, blobs, cfg.Storage.Bucket, log),
		Category:  newCategoryService(repos.Category, log),
		Thumbnail: newThumbnailService(blobs, cfg.Storage.Bucket, log),
	}
}
