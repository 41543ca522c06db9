package domain

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Title and content length constraints, enforced at creation and edit.
const (
	TitleMinLen   = 3
	TitleMaxLen   = 255
	ContentMinLen = 10
)

// Common validation errors for Blog, all wrapping ErrValidation.
var (
	ErrEmptyBlogUserID = fmt.Errorf("%w: blog user ID cannot be empty", ErrValidation)
	ErrInvalidTitle    = fmt.Errorf("%w: title must be between 3 and 255 characters", ErrValidation)
	ErrInvalidContent  = fmt.Errorf("%w: content must be at least 10 characters", ErrValidation)
)

// searchTermRegex accepts lowercase letters and spaces only, starting
// with a letter.
var searchTermRegex = regexp.MustCompile(`^[a-z][a-z\s]*$`)

// ValidTitle reports whether title is within the 3-255 character bounds.
// Bounds count characters, not bytes, so multibyte text is measured the
// same way clients see it.
func ValidTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= TitleMinLen && n <= TitleMaxLen
}

// ValidContent reports whether content is at least 10 characters.
func ValidContent(content string) bool {
	return utf8.RuneCountInString(content) >= ContentMinLen
}

// ValidSearchTerm reports whether term matches the allowed search shape.
func ValidSearchTerm(term string) bool {
	return searchTermRegex.MatchString(term)
}

// Blog represents a single published post. The ID is assigned by the
// store; CreatedAt orders listings (newest first).
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBlog creates a new Blog owned by userID. The image reference is
// optional and may be empty. Returns an error if validation fails.
func NewBlog(userID uuid.UUID, title, content, image string) (*Blog, error) {
	blog := &Blog{
		Title:     title,
		Content:   content,
		Image:     image,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := blog.Validate(); err != nil {
		return nil, err
	}

	return blog, nil
}

// Validate checks if the Blog has valid data.
// Returns an error if any field fails validation.
func (b *Blog) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrEmptyBlogUserID
	}

	if !ValidTitle(b.Title) {
		return ErrInvalidTitle
	}

	if !ValidContent(b.Content) {
		return ErrInvalidContent
	}

	return nil
}
