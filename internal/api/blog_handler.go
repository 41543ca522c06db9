package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tobenna/blog-api/internal/api/middleware"
	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/domain"
	"github.com/tobenna/blog-api/internal/platform/logger"
	"github.com/tobenna/blog-api/internal/store"
)

// postsPerPage is the fixed page size for all listing and search endpoints.
const postsPerPage = 10

// BlogHandler handles blog post listing, search and CRUD.
type BlogHandler struct {
	blogStore store.BlogStore
	validator *validator.Validate
}

// NewBlogHandler creates a new BlogHandler with the given dependencies.
func NewBlogHandler(blogStore store.BlogStore) *BlogHandler {
	return &BlogHandler{
		blogStore: blogStore,
		validator: newValidator(),
	}
}

// pageParam reads the page query parameter, defaulting to 1 when absent,
// malformed, or below 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// listResponse shapes the uniform page envelope.
func listResponse(page int, blogs []domain.Blog) BlogListResponse {
	return BlogListResponse{
		Status: shared.StatusSuccessful,
		Count:  len(blogs),
		Page:   page,
		Blogs:  blogs,
	}
}

// ListAll handles GET /blogs.
func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	offset := (page - 1) * postsPerPage

	blogs, err := h.blogStore.List(r.Context(), offset, postsPerPage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while fetching blogs", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listResponse(page, blogs))
}

// ListByUser handles GET /user/{userId}/blogs.
func (h *BlogHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid userId")
		return
	}

	page := pageParam(r)
	offset := (page - 1) * postsPerPage

	blogs, err := h.blogStore.ListByUser(r.Context(), userID, offset, postsPerPage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while fetching blogs", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listResponse(page, blogs))
}

// Search handles GET /blogs/search.
//
// The term is required and must match the allowed shape; malformed terms
// are rejected with 401 before any query runs.
func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if !domain.ValidSearchTerm(term) {
		shared.RespondWithError(w, r,
			http.StatusUnauthorized, shared.StatusError, "Error in your search terms")
		return
	}

	page := pageParam(r)
	offset := (page - 1) * postsPerPage

	blogs, err := h.blogStore.Search(r.Context(), term, offset, postsPerPage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while searching blogs", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listResponse(page, blogs))
}

// SearchByUser handles GET /user/{userId}/blogs/search.
//
// Unlike the global search the term is optional here; an absent term
// lists all of the user's posts.
func (h *BlogHandler) SearchByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid userId")
		return
	}

	term := r.URL.Query().Get("q")
	if term != "" && !domain.ValidSearchTerm(term) {
		shared.RespondWithError(w, r,
			http.StatusUnauthorized, shared.StatusError, "Error in your search terms")
		return
	}

	page := pageParam(r)
	offset := (page - 1) * postsPerPage

	blogs, err := h.blogStore.SearchByUser(r.Context(), userID, term, offset, postsPerPage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while fetching blogs", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listResponse(page, blogs))
}

// Create handles POST /blogs (authenticated).
//
// The owner-existence check and the insert are a single foreign-key
// constrained statement; an unknown owner is a client error, not a
// server fault.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	authUserID, _ := middleware.GetUserID(r)

	var req CreateBlogRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, collectFieldErrors(err))
		return
	}

	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid userId")
		return
	}

	if !domain.ValidTitle(req.Title) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Title must be between 3 and 255 characters")
		return
	}
	if !domain.ValidContent(req.Content) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Content must be at least 10 characters")
		return
	}

	// The contract trusts the body's userId even though the route is
	// authenticated. Surface the mismatch in the logs so the gap is
	// visible in operation.
	if authUserID != uuid.Nil && authUserID != ownerID {
		log := logger.FromContextOrDefault(r.Context(), nil)
		log.Warn("post author differs from authenticated user",
			slog.String("token_user_id", authUserID.String()),
			slog.String("body_user_id", ownerID.String()))
	}

	blog, err := domain.NewBlog(ownerID, req.Title, req.Content, req.Image)
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, err.Error())
		return
	}

	if err := h.blogStore.Create(r.Context(), blog); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateBlogResponse{
		Message: "Blog created successfully",
		ID:      blog.ID,
		Status:  shared.StatusSuccessful,
	})
}

// Edit handles PUT /blogs/{id} (authenticated).
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid postId")
		return
	}

	var req EditBlogRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, collectFieldErrors(err))
		return
	}

	if !domain.ValidTitle(req.Title) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Title must be between 3 and 255 characters")
		return
	}
	if !domain.ValidContent(req.Content) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Content must be at least 10 characters")
		return
	}

	blog, err := h.blogStore.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BlogResponse{
		Blog:   blog,
		Status: shared.StatusSuccessful,
	})
}

// Delete handles DELETE /blogs/{id} (authenticated).
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid postId")
		return
	}

	if err := h.blogStore.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Blog post deleted successfully",
		Status:  shared.StatusSuccessful,
	})
}
