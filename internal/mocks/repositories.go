package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/hashicorp/go-multierror"
)

var (
	_ repository.PostRepository     = (*MockPostRepository)(nil)
	_ repository.CategoryRepository = (*MockCategoryRepository)(nil)
)

// MockCategoryRepository is an in-memory CategoryRepository
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[int64]*models.Category
	nextID     int64
	onDelete   func(id int64)

	CreateError error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int64]*models.Category),
	}
}

// Seed stores a category under a fixed id
func (m *MockCategoryRepository) Seed(id int64, name string) *models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	c := &models.Category{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	m.Categories[id] = c
	if id > m.nextID {
		m.nextID = id
	}
	return c
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.Categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	m.nextID++
	now := time.Now()
	category.ID = m.nextID
	category.CreatedAt = now
	category.UpdatedAt = now
	cp := *category
	m.Categories[cp.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.Categories[category.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Name = category.Name
	stored.UpdatedAt = time.Now()
	category.CreatedAt = stored.CreatedAt
	category.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	if _, ok := m.Categories[id]; !ok {
		m.mu.Unlock()
		return models.ErrNotFound
	}
	delete(m.Categories, id)
	hook := m.onDelete
	m.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	return nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Categories), nil
}

func (m *MockCategoryRepository) name(id int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Categories[id]
	if !ok {
		return "", false
	}
	return c.Name, true
}

// MockPostRepository is an in-memory PostRepository. Every write is applied
// whole or not at all, like the transactional implementation.
type MockPostRepository struct {
	mu         sync.Mutex
	Posts      map[int64]*models.Post
	Links      map[int64]map[int64]bool // post id -> category ids
	categories *MockCategoryRepository
	nextID     int64
	clock      time.Time

	CreateError error
	UpdateError error
	CountError  error
	SyncCalls   int
}

// NewMockPostRepository creates a post repository whose links reference categories.
// Deleting a category removes its links.
func NewMockPostRepository(categories *MockCategoryRepository) *MockPostRepository {
	m := &MockPostRepository{
		Posts:      make(map[int64]*models.Post),
		Links:      make(map[int64]map[int64]bool),
		categories: categories,
		clock:      time.Now(),
	}
	categories.mu.Lock()
	categories.onDelete = m.removeCategory
	categories.mu.Unlock()
	return m
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Post, 0, len(m.Posts))
	for id := range m.Posts {
		out = append(out, m.view(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Posts[id]; !ok {
		return nil, nil
	}
	return m.view(id), nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post, categoryIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	ids := models.UniqueIDs(categoryIDs)
	if err := m.checkCategories(ids); err != nil {
		return err
	}

	m.nextID++
	now := m.tick()
	post.ID = m.nextID
	post.CreatedAt = now
	post.UpdatedAt = now
	stored := *post
	stored.Categories = nil
	m.Posts[post.ID] = &stored
	m.replaceLinks(post.ID, ids)
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post, categoryIDs []int64, keepThumbnail bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return m.UpdateError
	}
	stored, ok := m.Posts[post.ID]
	if !ok {
		return models.ErrNotFound
	}
	ids := models.UniqueIDs(categoryIDs)
	if err := m.checkCategories(ids); err != nil {
		return err
	}

	stored.Title = post.Title
	stored.Content = post.Content
	if !keepThumbnail {
		stored.ThumbnailImageKey = nil
		if post.ThumbnailImageKey != nil {
			key := *post.ThumbnailImageKey
			stored.ThumbnailImageKey = &key
		}
	}
	stored.UpdatedAt = m.tick()
	post.ThumbnailImageKey = stored.ThumbnailImageKey
	post.CreatedAt = stored.CreatedAt
	post.UpdatedAt = stored.UpdatedAt
	m.replaceLinks(post.ID, ids)
	return nil
}

func (m *MockPostRepository) SyncCategories(ctx context.Context, postID int64, categoryIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Posts[postID]; !ok {
		return models.ErrNotFound
	}
	ids := models.UniqueIDs(categoryIDs)
	if err := m.checkCategories(ids); err != nil {
		return err
	}
	m.replaceLinks(postID, ids)
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Links, id)
	delete(m.Posts, id)
	return nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Posts), nil
}

// LinkedCategoryIDs returns the stored category ids of a post, sorted
func (m *MockPostRepository) LinkedCategoryIDs(postID int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.Links[postID]))
	for id := range m.Links[postID] {
		ids = append(ids, id)
	}
	return models.UniqueIDs(ids)
}

// LinkCount returns the number of stored post/category rows across all posts
func (m *MockPostRepository) LinkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, set := range m.Links {
		n += len(set)
	}
	return n
}

func (m *MockPostRepository) replaceLinks(postID int64, ids []int64) {
	m.SyncCalls++
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	m.Links[postID] = set
}

func (m *MockPostRepository) checkCategories(ids []int64) error {
	var result *multierror.Error
	for _, id := range ids {
		if _, ok := m.categories.name(id); !ok {
			result = multierror.Append(result, models.UnknownCategoryError(id))
		}
	}
	return result.ErrorOrNil()
}

func (m *MockPostRepository) removeCategory(categoryID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, set := range m.Links {
		delete(set, categoryID)
	}
}

// view builds the joined read model; callers hold m.mu
func (m *MockPostRepository) view(id int64) *models.Post {
	p := *m.Posts[id]
	if p.ThumbnailImageKey != nil {
		key := *p.ThumbnailImageKey
		p.ThumbnailImageKey = &key
	}
	p.Categories = []models.CategoryRef{}
	ids := make([]int64, 0, len(m.Links[id]))
	for cid := range m.Links[id] {
		ids = append(ids, cid)
	}
	for _, cid := range models.UniqueIDs(ids) {
		if name, ok := m.categories.name(cid); ok {
			p.Categories = append(p.Categories, models.CategoryRef{ID: cid, Name: name})
		}
	}
	return &p
}

// tick returns strictly increasing timestamps so list order is deterministic
func (m *MockPostRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}
