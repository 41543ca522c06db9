package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/domain"
)

// newValidator builds a validator that reports field names by their JSON
// tag, so collected field errors match the request payload keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Format checks (username/email/password shapes) live in the domain
// predicates; the struct tags only enforce presence.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token    string            `json:"token"`
	UserID   string            `json:"userId"`
	Timespan string            `json:"timespan"`
	Status   shared.StatusCode `json:"status"`
}

// MessageResponse is the generic success envelope carrying a message.
type MessageResponse struct {
	Message string            `json:"message"`
	Status  shared.StatusCode `json:"status"`
}

// UserResponse wraps a single user record. Password fields are excluded
// by the domain type's JSON tags.
type UserResponse struct {
	User   *domain.User      `json:"user"`
	Status shared.StatusCode `json:"status"`
}

// CreateBlogRequest defines the payload for the blog creation endpoint.
type CreateBlogRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	UserID  string `json:"userId"  validate:"required"`
	Image   string `json:"image"`
}

// EditBlogRequest defines the payload for the blog edit endpoint.
type EditBlogRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

// CreateBlogResponse defines the successful response for blog creation.
type CreateBlogResponse struct {
	Message string            `json:"message"`
	ID      int64             `json:"id"`
	Status  shared.StatusCode `json:"status"`
}

// BlogListResponse is the uniform envelope for all listing and search
// endpoints: the page of posts plus its size and the page number.
type BlogListResponse struct {
	Status shared.StatusCode `json:"status"`
	Count  int               `json:"count"`
	Page   int               `json:"page"`
	Blogs  []domain.Blog     `json:"blogs"`
}

// BlogResponse wraps a single blog record.
type BlogResponse struct {
	Blog   *domain.Blog      `json:"blog"`
	Status shared.StatusCode `json:"status"`
}

// UploadResponse defines the successful response for the upload endpoint.
type UploadResponse struct {
	Status     shared.StatusCode `json:"status"`
	Message    string            `json:"message"`
	RemotePath string            `json:"remotePath"`
}

// collectFieldErrors converts validator errors into the collected
// {field, message} list, so a request missing several fields reports all
// of them at once. Field names are reported in their JSON form.
func collectFieldErrors(err error) []shared.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []shared.FieldError{{Field: "request", Message: "is invalid"}}
	}

	fieldErrs := make([]shared.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		message := "is invalid"
		if fe.Tag() == "required" {
			message = "is required"
		}
		fieldErrs = append(fieldErrs, shared.FieldError{Field: fe.Field(), Message: message})
	}
	return fieldErrs
}
