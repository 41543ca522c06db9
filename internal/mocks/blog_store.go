package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tobenna/blog-api/internal/domain"
	"github.com/tobenna/blog-api/internal/store"
)

// MockBlogStore implements store.BlogStore for testing
type MockBlogStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, blog *domain.Blog) error
	ListFn         func(ctx context.Context, offset, limit int) ([]domain.Blog, error)
	ListByUserFn   func(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Blog, error)
	SearchFn       func(ctx context.Context, term string, offset, limit int) ([]domain.Blog, error)
	SearchByUserFn func(ctx context.Context, userID uuid.UUID, term string, offset, limit int) ([]domain.Blog, error)
	UpdateFn       func(ctx context.Context, id int64, title, content string) (*domain.Blog, error)
	DeleteFn       func(ctx context.Context, id int64) error

	// Data for the default implementation
	Blogs  []domain.Blog
	NextID int64

	// KnownUsers holds owner IDs the default Create accepts; an empty
	// map accepts any owner.
	KnownUsers map[uuid.UUID]bool

	CreateError error
	ListError   error
}

// Ensure MockBlogStore implements store.BlogStore
var _ store.BlogStore = (*MockBlogStore)(nil)

// NewMockBlogStore creates a new mock store with initialized defaults
func NewMockBlogStore() *MockBlogStore {
	return &MockBlogStore{NextID: 1}
}

// Create implements the BlogStore interface
func (m *MockBlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, blog)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if len(m.KnownUsers) > 0 && !m.KnownUsers[blog.UserID] {
		return store.ErrBlogOwnerNotFound
	}

	blog.ID = m.NextID
	m.NextID++
	m.Blogs = append(m.Blogs, *blog)
	return nil
}

// List implements the BlogStore interface
func (m *MockBlogStore) List(ctx context.Context, offset, limit int) ([]domain.Blog, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.page(m.sorted(), offset, limit), nil
}

// ListByUser implements the BlogStore interface
func (m *MockBlogStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]domain.Blog, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, offset, limit)
	}

	var owned []domain.Blog
	for _, b := range m.sorted() {
		if b.UserID == userID {
			owned = append(owned, b)
		}
	}
	return m.page(owned, offset, limit), nil
}

// Search implements the BlogStore interface
func (m *MockBlogStore) Search(
	ctx context.Context,
	term string,
	offset, limit int,
) ([]domain.Blog, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term, offset, limit)
	}

	var matched []domain.Blog
	for _, b := range m.sorted() {
		if containsFold(b.Title, term) || containsFold(b.Content, term) {
			matched = append(matched, b)
		}
	}
	return m.page(matched, offset, limit), nil
}

// SearchByUser implements the BlogStore interface
func (m *MockBlogStore) SearchByUser(
	ctx context.Context,
	userID uuid.UUID,
	term string,
	offset, limit int,
) ([]domain.Blog, error) {
	if m.SearchByUserFn != nil {
		return m.SearchByUserFn(ctx, userID, term, offset, limit)
	}

	var matched []domain.Blog
	for _, b := range m.sorted() {
		if b.UserID != userID {
			continue
		}
		if containsFold(b.Title, term) || containsFold(b.Content, term) {
			matched = append(matched, b)
		}
	}
	return m.page(matched, offset, limit), nil
}

// Update implements the BlogStore interface
func (m *MockBlogStore) Update(
	ctx context.Context,
	id int64,
	title, content string,
) (*domain.Blog, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, title, content)
	}

	for i := range m.Blogs {
		if m.Blogs[i].ID == id {
			m.Blogs[i].Title = title
			m.Blogs[i].Content = content
			updated := m.Blogs[i]
			return &updated, nil
		}
	}
	return nil, store.ErrBlogNotFound
}

// Delete implements the BlogStore interface
func (m *MockBlogStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i := range m.Blogs {
		if m.Blogs[i].ID == id {
			m.Blogs = append(m.Blogs[:i], m.Blogs[i+1:]...)
			return nil
		}
	}
	return store.ErrBlogNotFound
}

// sorted returns the stored blogs ordered by creation time descending,
// matching the real store's ordering guarantee.
func (m *MockBlogStore) sorted() []domain.Blog {
	out := make([]domain.Blog, len(m.Blogs))
	copy(out, m.Blogs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// page slices the given blogs by offset and limit.
func (m *MockBlogStore) page(blogs []domain.Blog, offset, limit int) []domain.Blog {
	if offset >= len(blogs) {
		return []domain.Blog{}
	}
	end := offset + limit
	if end > len(blogs) {
		end = len(blogs)
	}
	return blogs[offset:end]
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
