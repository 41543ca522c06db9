// Package api implements the HTTP handlers for the blog API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/domain"
	"github.com/tobenna/blog-api/internal/service/auth"
	"github.com/tobenna/blog-api/internal/store"
)

// findUserTimeout bounds the user lookup on /users.
const findUserTimeout = 10 * time.Second

// tokenTimespan is the human-readable validity window reported on login.
const tokenTimespan = "1 hour"

// UserHandler handles registration, login and user lookup.
type UserHandler struct {
	userStore store.UserStore
	jwt       auth.JWTService
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	jwt auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *UserHandler {
	return &UserHandler{
		userStore: userStore,
		jwt:       jwt,
		hasher:    hasher,
		verifier:  verifier,
		validator: newValidator(),
	}
}

// Register handles POST /register.
//
// Field formats are checked before any data access; the username
// uniqueness check runs before the email one. The database unique
// constraints remain the final authority, so a constraint violation on
// insert is reported the same way as a failed pre-check.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Parameters are required and cannot be empty")
		return
	}

	if !domain.ValidEmail(req.Email) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Email is invalid")
		return
	}
	if !domain.ValidPassword(req.Password) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Password is invalid")
		return
	}
	if !domain.ValidUsername(req.Username) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Username is invalid")
		return
	}

	// Username checked before email: first duplicate wins.
	if _, err := h.userStore.GetByUsername(r.Context(), req.Username); err == nil {
		RespondWithMappedError(w, r, store.ErrUsernameExists)
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		RespondWithMappedError(w, r, err)
		return
	}

	if _, err := h.userStore.GetByEmail(r.Context(), req.Email); err == nil {
		RespondWithMappedError(w, r, store.ErrEmailExists)
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		RespondWithMappedError(w, r, err)
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, err.Error())
		return
	}

	user.HashedPassword, err = h.hasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while registering the user", err)
		return
	}
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{
		Message: "User registered successfully",
		Status:  shared.StatusSuccessful,
	})
}

// Login handles POST /login.
//
// An unknown username and a wrong password produce the same 401 response
// so callers cannot enumerate accounts.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Username and password are required")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithMappedError(w, r, auth.ErrInvalidCredentials)
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithMappedError(w, r, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwt.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, shared.StatusError,
			"An error occurred while logging in", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID.String(),
		Timespan: tokenTimespan,
		Status:   shared.StatusSuccessful,
	})
}

// FindUser handles GET /users?username=.
//
// The lookup runs under a fixed timeout; password fields are stripped
// from the response by the domain type's JSON tags.
func (h *UserHandler) FindUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if !domain.ValidUsername(username) {
		shared.RespondWithError(w, r,
			http.StatusBadRequest, shared.StatusInvalid,
			"Username parameter is required or invalid")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), findUserTimeout)
	defer cancel()

	user, err := h.userStore.GetByUsername(ctx, username)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		User:   user,
		Status: shared.StatusSuccessful,
	})
}
