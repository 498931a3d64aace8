package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/service"
	"github.com/rs/zerolog"
)

func newPostService(categories int) (service.PostService, *mocks.MockPostRepository) {
	categoryRepo := mocks.NewMockCategoryRepository()
	for i := 1; i <= categories; i++ {
		categoryRepo.Seed(int64(i), fmt.Sprintf("category-%03d", i))
	}
	postRepo := mocks.NewMockPostRepository(categoryRepo)

	repos := &repository.Repositories{Post: postRepo, Category: categoryRepo}
	cfg := &config.Config{Storage: config.StorageConfig{Bucket: "post_thumbnail"}}
	services := service.NewServices(repos, mocks.NewMockBlobStore(), cfg, zerolog.Nop())
	return services.Post, postRepo
}

func categoryRefs(from, n int) *[]models.CategoryID {
	refs := make([]models.CategoryID, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, models.CategoryID{ID: int64(from + i)})
	}
	return &refs
}

// BenchmarkCategorySync alternates a post between two overlapping category sets
func BenchmarkCategorySync(b *testing.B) {
	posts, _ := newPostService(100)
	ctx := context.Background()

	post, err := posts.Create(ctx, &models.PostInput{Title: "bench", Content: "c", Categories: categoryRefs(1, 50)})
	if err != nil {
		b.Fatal(err)
	}
	sets := []*models.CategorySetInput{
		{Categories: categoryRefs(1, 50)},
		{Categories: categoryRefs(26, 50)},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := posts.SetCategories(ctx, post.ID, sets[i%2]); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCategorySyncParallel syncs distinct posts concurrently
func BenchmarkCategorySyncParallel(b *testing.B) {
	posts, _ := newPostService(20)
	ctx := context.Background()

	ids := make([]int64, 64)
	for i := range ids {
		post, err := posts.Create(ctx, &models.PostInput{Title: "bench", Content: "c", Categories: categoryRefs(1, 5)})
		if err != nil {
			b.Fatal(err)
		}
		ids[i] = post.ID
	}
	set := &models.CategorySetInput{Categories: categoryRefs(3, 10)}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			posts.SetCategories(ctx, ids[i%len(ids)], set)
			i++
		}
	})
}

// BenchmarkUniqueIDs benchmarks de-duplication of a request with repeats
func BenchmarkUniqueIDs(b *testing.B) {
	ids := make([]int64, 1000)
	for i := range ids {
		ids[i] = int64(i % 300)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		models.UniqueIDs(ids)
	}
}

// BenchmarkListPosts benchmarks the joined post listing
func BenchmarkListPosts(b *testing.B) {
	posts, _ := newPostService(10)
	ctx := context.Background()
	for i := 0; i < 500; i++ {
		if _, err := posts.Create(ctx, &models.PostInput{Title: "bench", Content: "c", Categories: categoryRefs(1+i%5, 3)}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := posts.List(ctx); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(500*b.N)/b.Elapsed().Seconds(), "rows/sec")
}
