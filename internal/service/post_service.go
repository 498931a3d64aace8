package service

import (
	"context"

	"github.com/blog-platform-api/internal/blobstore"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	posts  repository.PostRepository
	blobs  blobstore.Store
	bucket string
	log    zerolog.Logger
}

func newPostService(posts repository.PostRepository, blobs blobstore.Store, bucket string, log zerolog.Logger) *postService {
	return &postService{
		posts:  posts,
		blobs:  blobs,
		bucket: bucket,
		log:    log.With().Str("service", "post").Logger(),
	}
}

// List returns all posts with their categories
func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	for _, p := range posts {
		s.withThumbnailURL(p)
	}
	return posts, nil
}

// Get returns a post with its categories, or models.ErrNotFound
func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrNotFound
	}
	return s.withThumbnailURL(post), nil
}

// Create writes the post row and then links the requested categories
func (s *postService) Create(ctx context.Context, in *models.PostInput) (*models.Post, error) {
	if err := validation.ValidatePost(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:             in.Title,
		Content:           in.Content,
		ThumbnailImageKey: thumbnailKey(in.ThumbnailImageKey),
	}
	categoryIDs := in.CategoryIDs()

	if err := s.posts.Create(ctx, post, categoryIDs); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("post_id", post.ID).
		Ints64("category_ids", categoryIDs).
		Msg("Post created")

	return s.Get(ctx, post.ID)
}

// Update overwrites the post fields and replaces its category links. An
// omitted thumbnail key keeps the stored one; an empty key removes it.
func (s *postService) Update(ctx context.Context, id int64, in *models.PostInput) (*models.Post, error) {
	if err := validation.ValidatePost(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:                id,
		Title:             in.Title,
		Content:           in.Content,
		ThumbnailImageKey: thumbnailKey(in.ThumbnailImageKey),
	}
	categoryIDs := in.CategoryIDs()

	keepThumbnail := in.ThumbnailImageKey == nil
	if err := s.posts.Update(ctx, post, categoryIDs, keepThumbnail); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("post_id", id).
		Ints64("category_ids", categoryIDs).
		Msg("Post updated")

	return s.Get(ctx, id)
}

// SetCategories replaces the category links of a post without touching its fields
func (s *postService) SetCategories(ctx context.Context, id int64, in *models.CategorySetInput) (*models.Post, error) {
	if err := validation.ValidateCategoryRefs(in.Categories); err != nil {
		return nil, err
	}

	categoryIDs := (&models.PostInput{Categories: in.Categories}).CategoryIDs()
	if err := s.posts.SyncCategories(ctx, id, categoryIDs); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("post_id", id).
		Ints64("category_ids", categoryIDs).
		Msg("Post categories replaced")

	return s.Get(ctx, id)
}

// Delete removes a post and its category links
func (s *postService) Delete(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("post_id", id).Msg("Post deleted")
	return nil
}

// Count returns the number of posts
func (s *postService) Count(ctx context.Context) (int, error) {
	return s.posts.Count(ctx)
}

func (s *postService) withThumbnailURL(post *models.Post) *models.Post {
	if post.ThumbnailImageKey != nil && *post.ThumbnailImageKey != "" {
		post.ThumbnailURL = s.blobs.PublicURL(s.bucket, *post.ThumbnailImageKey)
	}
	return post
}

// thumbnailKey treats an empty key as absent
func thumbnailKey(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	k := *key
	return &k
}
