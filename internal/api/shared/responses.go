package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tobenna/blog-api/internal/redact"
)

// StatusCode is the application-level status code carried in every
// response envelope alongside the HTTP status.
type StatusCode int

// The fixed status code enum.
const (
	StatusNotFound     StatusCode = 10001
	StatusSuccessful   StatusCode = 10010
	StatusAccessDenied StatusCode = 10030
	StatusInvalid      StatusCode = 10040
	StatusError        StatusCode = 10090
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string     `json:"error"`
	Status  StatusCode `json:"status"`
	TraceID string     `json:"trace_id,omitempty"`
}

// FieldError describes a single invalid or missing request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrorResponse carries a collected list of field errors so a
// request missing several fields reports all of them at once.
type FieldErrorResponse struct {
	Errors  []FieldError `json:"errors"`
	Status  StatusCode   `json:"status"`
	TraceID string       `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given HTTP
// status, envelope status code and message. It also sets the TraceID
// from the request context if available.
func RespondWithError(
	w http.ResponseWriter,
	r *http.Request,
	httpStatus int,
	status StatusCode,
	message string,
) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", httpStatus,
		"status", int(status),
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, httpStatus, ErrorResponse{
		Error:   message,
		Status:  status,
		TraceID: traceID,
	})
}

// RespondWithFieldErrors writes a 400 response carrying the collected
// per-field validation errors.
func RespondWithFieldErrors(w http.ResponseWriter, r *http.Request, errs []FieldError) {
	RespondWithJSON(w, r, http.StatusBadRequest, FieldErrorResponse{
		Errors:  errs,
		Status:  StatusInvalid,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes a sanitized JSON error response and logs
// the detailed error. The raw error appears (redacted) only in the logs,
// never in the response body.
//
// Log level strategy: 5xx at ERROR, 4xx at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	httpStatus int,
	status StatusCode,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", httpStatus),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if httpStatus >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, httpStatus, ErrorResponse{
		Error:   userMessage,
		Status:  status,
		TraceID: traceID,
	})
}
