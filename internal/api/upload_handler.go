package api

import (
	"net/http"

	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/platform/storage"
)

// uploadFormField is the multipart form field carrying the file.
const uploadFormField = "image"

// UploadHandler accepts a single binary file from a multipart request
// and hands it to the storage backend.
type UploadHandler struct {
	files storage.FileStore
}

// NewUploadHandler creates a new UploadHandler with the given storage backend.
func NewUploadHandler(files storage.FileStore) *UploadHandler {
	return &UploadHandler{files: files}
}

// Upload handles POST /upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	ref, err := h.files.Save(r.Context(), header.Filename, file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while uploading the file", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UploadResponse{
		Status:     shared.StatusSuccessful,
		Message:    "Uploaded Successfully",
		RemotePath: ref,
	})
}
