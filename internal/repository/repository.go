package repository

import (
	"context"
	"database/sql"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// PostRepository defines the interface for post data operations.
//
// Create, Update and SyncCategories write the post row and then replace the
// post's category links inside one transaction, so readers observe either the
// old link set or the new one. Update leaves the stored thumbnail key alone
// when keepThumbnail is set and otherwise writes post.ThumbnailImageKey, nil
// included.
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post, categoryIDs []int64) error
	Update(ctx context.Context, post *models.Post, categoryIDs []int64, keepThumbnail bool) error
	Delete(ctx context.Context, id int64) error
	SyncCategories(ctx context.Context, postID int64, categoryIDs []int64) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post     PostRepository
	Category CategoryRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:     NewPostRepo(db),
		Category: NewCategoryRepo(db),
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
