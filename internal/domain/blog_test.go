package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidTitle(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  bool
	}{
		{"valid", "My first post", true},
		{"minimum length", "abc", true},
		{"maximum length", strings.Repeat("a", 255), true},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 256), false},
		{"empty", "", false},
		{"multibyte at maximum", strings.Repeat("é", 255), true},
		{"multibyte over maximum", strings.Repeat("é", 256), false},
		{"three emoji meet minimum", "🙂🙂🙂", true},
		{"two emoji too short", "🙂🙂", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ValidTitle(c.title); got != c.want {
				t.Errorf("ValidTitle(%q) = %v, want %v", c.title, got, c.want)
			}
		})
	}
}

func TestValidContent(t *testing.T) {
	if !ValidContent("exactly 10") {
		t.Error("Expected 10-character content to be valid")
	}
	if ValidContent("too short") {
		t.Error("Expected 9-character content to be invalid")
	}
	if ValidContent("") {
		t.Error("Expected empty content to be invalid")
	}

	// Character counts, not byte counts
	if !ValidContent(strings.Repeat("é", 10)) {
		t.Error("Expected 10 multibyte characters to be valid")
	}
	if ValidContent(strings.Repeat("é", 9)) {
		t.Error("Expected 9 multibyte characters to be invalid")
	}
}

func TestValidSearchTerm(t *testing.T) {
	cases := []struct {
		term string
		want bool
	}{
		{"golang", true},
		{"hello world", true},
		{"a", true},
		{"", false},
		{" leading space", false},
		{"Uppercase", false},
		{"term1", false},
		{"term; DROP TABLE blogs", false},
	}

	for _, c := range cases {
		if got := ValidSearchTerm(c.term); got != c.want {
			t.Errorf("ValidSearchTerm(%q) = %v, want %v", c.term, got, c.want)
		}
	}
}

func TestNewBlog(t *testing.T) {
	userID := uuid.New()

	blog, err := NewBlog(userID, "My first post", "Some content worth reading", "assets/cover.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if blog.UserID != userID {
		t.Errorf("Expected user ID %v, got %v", userID, blog.UserID)
	}

	if blog.Image != "assets/cover.png" {
		t.Errorf("Expected image assets/cover.png, got %s", blog.Image)
	}

	if blog.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// The image is optional
	blog, err = NewBlog(userID, "My first post", "Some content worth reading", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if blog.Image != "" {
		t.Errorf("Expected empty image, got %s", blog.Image)
	}

	// Test empty owner
	_, err = NewBlog(uuid.Nil, "My first post", "Some content worth reading", "")
	if err != ErrEmptyBlogUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyBlogUserID, err)
	}

	// Test invalid title
	_, err = NewBlog(userID, "ab", "Some content worth reading", "")
	if err != ErrInvalidTitle {
		t.Errorf("Expected error %v, got %v", ErrInvalidTitle, err)
	}

	// Test invalid content
	_, err = NewBlog(userID, "My first post", "short", "")
	if err != ErrInvalidContent {
		t.Errorf("Expected error %v, got %v", ErrInvalidContent, err)
	}
}
