// Package middleware provides HTTP middleware for the API layer.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/redact"
	"github.com/tobenna/blog-api/internal/service/auth"
)

// AuthMiddleware provides JWT bearer-token authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the Authorization header and adds the user ID to
// the request context for authorized requests. Requests without a
// syntactically valid `Bearer <token>` header, or with a token that fails
// verification, are rejected with 401 before the handler runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r,
				http.StatusUnauthorized, shared.StatusAccessDenied,
				"Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r,
				http.StatusUnauthorized, shared.StatusAccessDenied,
				"Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r,
					http.StatusUnauthorized, shared.StatusAccessDenied,
					"Token expired")
			case auth.ErrInvalidToken, auth.ErrMissingToken:
				shared.RespondWithError(w, r,
					http.StatusUnauthorized, shared.StatusAccessDenied,
					"Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r,
					http.StatusInternalServerError, shared.StatusError,
					"Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
