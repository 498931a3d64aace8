package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const selectPostsWithCategories = `
	SELECT p.id, p.title, p.content, p.thumbnail_image_key, p.created_at, p.updated_at, c.id, c.name
	FROM posts p
	LEFT JOIN post_categories pc ON pc.post_id = p.id
	LEFT JOIN categories c ON c.id = pc.category_id
`

// List retrieves all posts with their categories, newest first
func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostsWithCategories+" ORDER BY p.created_at DESC, p.id DESC, c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// GetByID retrieves a post with its categories
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostsWithCategories+" WHERE p.id = $1 ORDER BY c.id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

// Create inserts a new post and links it to categoryIDs
func (r *postRepo) Create(ctx context.Context, post *models.Post, categoryIDs []int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO posts (title, content, thumbnail_image_key)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRowContext(ctx, query, post.Title, post.Content, post.ThumbnailImageKey).
			Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return syncPostCategories(ctx, tx, post.ID, categoryIDs)
	})
}

// Update overwrites the post fields and replaces its category links
func (r *postRepo) Update(ctx context.Context, post *models.Post, categoryIDs []int64, keepThumbnail bool) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE posts
			SET title = $2,
				content = $3,
				thumbnail_image_key = CASE WHEN $5::boolean THEN thumbnail_image_key ELSE $4::text END,
				updated_at = NOW()
			WHERE id = $1
			RETURNING thumbnail_image_key, created_at, updated_at
		`
		var thumbnailKey sql.NullString
		err := tx.QueryRowContext(ctx, query, post.ID, post.Title, post.Content, post.ThumbnailImageKey, keepThumbnail).
			Scan(&thumbnailKey, &post.CreatedAt, &post.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		post.ThumbnailImageKey = nullStringPtr(thumbnailKey)

		return syncPostCategories(ctx, tx, post.ID, categoryIDs)
	})
}

// SyncCategories replaces the category links of an existing post
func (r *postRepo) SyncCategories(ctx context.Context, postID int64, categoryIDs []int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM posts WHERE id = $1 FOR UPDATE", postID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock post: %w", err)
		}

		return syncPostCategories(ctx, tx, postID, categoryIDs)
	})
}

// Delete removes a post and its category links
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM post_categories WHERE post_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete category links: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

// scanPosts folds joined post/category rows into posts, keeping row order
func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	byID := make(map[int64]*models.Post)

	for rows.Next() {
		var (
			p            models.Post
			thumbnailKey sql.NullString
			categoryID   sql.NullInt64
			categoryName sql.NullString
		)
		err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &thumbnailKey, &p.CreatedAt, &p.UpdatedAt,
			&categoryID, &categoryName,
		)
		if err != nil {
			return nil, err
		}

		post, ok := byID[p.ID]
		if !ok {
			p.ThumbnailImageKey = nullStringPtr(thumbnailKey)
			p.Categories = []models.CategoryRef{}
			post = &p
			byID[p.ID] = post
			posts = append(posts, post)
		}

		if categoryID.Valid {
			post.Categories = append(post.Categories, models.CategoryRef{
				ID:   categoryID.Int64,
				Name: categoryName.String,
			})
		}
	}

	return posts, rows.Err()
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
