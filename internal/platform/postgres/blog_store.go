package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tobenna/blog-api/internal/domain"
	"github.com/tobenna/blog-api/internal/platform/logger"
	"github.com/tobenna/blog-api/internal/store"
)

// PostgresBlogStore implements the store.BlogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBlogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBlogStore creates a new PostgreSQL implementation of the
// BlogStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresBlogStore(db store.DBTX, logger *slog.Logger) *PostgresBlogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBlogStore{
		db:     db,
		logger: logger.With(slog.String("component", "blog_store")),
	}
}

// Ensure PostgresBlogStore implements store.BlogStore interface
var _ store.BlogStore = (*PostgresBlogStore)(nil)

// Create implements store.BlogStore.Create
// The insert is constrained by the blogs_user_id_fkey foreign key, so the
// owner-existence check and the insert are a single atomic statement.
// Returns store.ErrBlogOwnerNotFound if the owner does not exist.
func (s *PostgresBlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := blog.Validate(); err != nil {
		log.Warn("blog validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", blog.UserID.String()))
		return err
	}

	query := `
		INSERT INTO blogs (title, content, image, user_id, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		blog.Title,
		blog.Content,
		blog.Image,
		blog.UserID,
		blog.CreatedAt,
	).Scan(&blog.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during blog creation",
				slog.String("user_id", blog.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrBlogOwnerNotFound, blog.UserID)
		}

		log.Error("failed to create blog",
			slog.String("error", err.Error()),
			slog.String("user_id", blog.UserID.String()))
		return MapError(err)
	}

	log.Info("blog created successfully",
		slog.Int64("blog_id", blog.ID),
		slog.String("user_id", blog.UserID.String()))
	return nil
}

// List implements store.BlogStore.List
func (s *PostgresBlogStore) List(ctx context.Context, offset, limit int) ([]domain.Blog, error) {
	query := `
		SELECT id, title, content, COALESCE(image, ''), user_id, created_at
		FROM blogs
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`
	return s.scanBlogs(ctx, query, offset, limit)
}

// ListByUser implements store.BlogStore.ListByUser
func (s *PostgresBlogStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]domain.Blog, error) {
	query := `
		SELECT id, title, content, COALESCE(image, ''), user_id, created_at
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`
	return s.scanBlogs(ctx, query, userID, offset, limit)
}

// Search implements store.BlogStore.Search
// The term has been shape-validated upstream (lowercase letters and
// spaces), so it cannot carry LIKE metacharacters.
func (s *PostgresBlogStore) Search(
	ctx context.Context,
	term string,
	offset, limit int,
) ([]domain.Blog, error) {
	query := `
		SELECT id, title, content, COALESCE(image, ''), user_id, created_at
		FROM blogs
		WHERE title ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`
	return s.scanBlogs(ctx, query, term, offset, limit)
}

// SearchByUser implements store.BlogStore.SearchByUser
func (s *PostgresBlogStore) SearchByUser(
	ctx context.Context,
	userID uuid.UUID,
	term string,
	offset, limit int,
) ([]domain.Blog, error) {
	query := `
		SELECT id, title, content, COALESCE(image, ''), user_id, created_at
		FROM blogs
		WHERE user_id = $1
		  AND (title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`
	return s.scanBlogs(ctx, query, userID, term, offset, limit)
}

// Update implements store.BlogStore.Update
// Returns store.ErrBlogNotFound if no post with that ID exists.
func (s *PostgresBlogStore) Update(
	ctx context.Context,
	id int64,
	title, content string,
) (*domain.Blog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE blogs
		SET title = $1, content = $2
		WHERE id = $3
		RETURNING id, title, content, COALESCE(image, ''), user_id, created_at
	`
	var blog domain.Blog
	err := s.db.QueryRowContext(ctx, query, title, content, id).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.Image,
		&blog.UserID,
		&blog.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBlogNotFound
		}
		log.Error("failed to update blog",
			slog.String("error", err.Error()),
			slog.Int64("blog_id", id))
		return nil, MapError(err)
	}

	log.Info("blog updated successfully", slog.Int64("blog_id", blog.ID))
	return &blog, nil
}

// Delete implements store.BlogStore.Delete
// Returns store.ErrBlogNotFound if no post with that ID exists.
func (s *PostgresBlogStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete blog",
			slog.String("error", err.Error()),
			slog.Int64("blog_id", id))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrBlogNotFound
	}

	log.Info("blog deleted successfully", slog.Int64("blog_id", id))
	return nil
}

// scanBlogs runs a multi-row blog query and maps the results.
func (s *PostgresBlogStore) scanBlogs(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Blog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query blogs", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	blogs := make([]domain.Blog, 0)
	for rows.Next() {
		var blog domain.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Content,
			&blog.Image,
			&blog.UserID,
			&blog.CreatedAt,
		); err != nil {
			log.Error("failed to scan blog row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return blogs, nil
}
