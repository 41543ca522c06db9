package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tobenna/blog-api/internal/domain"
)

// BlogStore defines the interface for blog post persistence.
//
// All listing and search operations order results by creation time
// descending (newest first) and page with the given offset and limit.
// Search matches a case-insensitive substring against title or content.
type BlogStore interface {
	// Create saves a new blog post and fills in the assigned ID.
	// The insert is constrained by the users foreign key: a post whose
	// owner does not exist fails with ErrBlogOwnerNotFound and nothing
	// is persisted.
	Create(ctx context.Context, blog *domain.Blog) error

	// List returns a page of all blog posts.
	List(ctx context.Context, offset, limit int) ([]domain.Blog, error)

	// ListByUser returns a page of posts owned by userID.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Blog, error)

	// Search returns a page of posts matching term in title or content.
	Search(ctx context.Context, term string, offset, limit int) ([]domain.Blog, error)

	// SearchByUser returns a page of posts owned by userID and matching
	// term in title or content.
	SearchByUser(ctx context.Context, userID uuid.UUID, term string, offset, limit int) ([]domain.Blog, error)

	// Update replaces the title and content of the post with the given ID
	// and returns the updated record.
	// Returns ErrBlogNotFound if no post with that ID exists.
	Update(ctx context.Context, id int64, title, content string) (*domain.Blog, error)

	// Delete removes the post with the given ID.
	// Returns ErrBlogNotFound if no post with that ID exists.
	Delete(ctx context.Context, id int64) error
}
