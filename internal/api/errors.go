package api

import (
	"errors"
	"net/http"

	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/service/auth"
	"github.com/tobenna/blog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
//
// Duplicate username/email map to 400 rather than 409: the canonical
// contract reports them as request-level failures.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToEnvelopeStatus maps internal errors to the envelope status
// code enum.
func MapErrorToEnvelopeStatus(err error) shared.StatusCode {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return shared.StatusAccessDenied

	case store.IsNotFoundError(err):
		return shared.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity):
		return shared.StatusInvalid

	case store.IsDuplicateError(err):
		return shared.StatusError

	default:
		return shared.StatusError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Internal detail never reaches the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Unauthorized"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"

	case errors.Is(err, store.ErrUserNotFound):
		return "User does not exist"

	case errors.Is(err, store.ErrBlogNotFound):
		return "Blog post not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username is not available"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already existed and cannot be used"

	case errors.Is(err, store.ErrBlogOwnerNotFound):
		return "User not found or not allowed to post"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError writes an error response derived from the error
// taxonomy: HTTP status, envelope status and safe message all come from
// the error type, while the raw error detail goes to the logs only.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(
		w, r,
		MapErrorToStatusCode(err),
		MapErrorToEnvelopeStatus(err),
		GetSafeErrorMessage(err),
		err,
	)
}
