package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobenna/blog-api/internal/api/shared"
	"github.com/tobenna/blog-api/internal/domain"
	"github.com/tobenna/blog-api/internal/mocks"
)

// newJSONRequest builds a request with a JSON-encoded body.
func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeErrorResponse parses the standard error envelope.
func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func newTestUserHandler(userStore *mocks.MockUserStore) (*UserHandler, *mocks.MockJWTService) {
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	return NewUserHandler(
		userStore,
		jwtService,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	), jwtService
}

func validRegisterBody() map[string]string {
	return map[string]string{
		"username": "tobenna",
		"email":    "tobenna@example.com",
		"password": "Passw0rd!",
	}
}

func TestRegister_Success(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	handler, _ := newTestUserHandler(userStore)

	req := newJSONRequest(t, http.MethodPost, "/register", validRegisterBody())
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Equal(t, shared.StatusSuccessful, resp.Status)

	// The stored user carries a hash, never the plaintext
	stored, ok := userStore.Users["tobenna"]
	require.True(t, ok)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "Passw0rd!", stored.HashedPassword)
}

func TestRegister_MissingFields(t *testing.T) {
	handler, _ := newTestUserHandler(mocks.NewMockUserStore())

	body := validRegisterBody()
	delete(body, "password")

	req := newJSONRequest(t, http.MethodPost, "/register", body)
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "Parameters are required and cannot be empty", resp.Error)
	assert.Equal(t, shared.StatusInvalid, resp.Status)
}

func TestRegister_FormatChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		message string
	}{
		{
			name:    "invalid email",
			mutate:  func(b map[string]string) { b["email"] = "not-an-email" },
			message: "Email is invalid",
		},
		{
			name:    "weak password",
			mutate:  func(b map[string]string) { b["password"] = "weakpass" },
			message: "Password is invalid",
		},
		{
			name:    "invalid username",
			mutate:  func(b map[string]string) { b["username"] = "user1" },
			message: "Username is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestUserHandler(mocks.NewMockUserStore())

			body := validRegisterBody()
			tt.mutate(body)

			req := newJSONRequest(t, http.MethodPost, "/register", body)
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeErrorResponse(t, rec)
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, shared.StatusInvalid, resp.Status)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	existing, err := domain.NewUser("tobenna", "other@example.com", "Passw0rd!")
	require.NoError(t, err)
	userStore.Users["tobenna"] = existing

	handler, _ := newTestUserHandler(userStore)

	req := newJSONRequest(t, http.MethodPost, "/register", validRegisterBody())
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "Username is not available", resp.Error)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	existing, err := domain.NewUser("someone", "tobenna@example.com", "Passw0rd!")
	require.NoError(t, err)
	userStore.Users["someone"] = existing

	handler, _ := newTestUserHandler(userStore)

	req := newJSONRequest(t, http.MethodPost, "/register", validRegisterBody())
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "Email already existed and cannot be used", resp.Error)
}

// captureErrorLines swaps the default logger for a buffered one and
// returns the captured lines carrying an ERROR level.
func captureErrorLines(t *testing.T) func() []string {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return func() []string {
		var lines []string
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.Contains(line, `"level":"ERROR"`) {
				lines = append(lines, line)
			}
		}
		return lines
	}
}

// A hasher failure produces a 500 and exactly one error log entry.
func TestRegister_HasherFailureLogsOnce(t *testing.T) {
	errorLines := captureErrorLines(t)

	handler := NewUserHandler(
		mocks.NewMockUserStore(),
		&mocks.MockJWTService{Token: "test-token"},
		&mocks.MockPasswordHasher{Err: assert.AnError},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	req := newJSONRequest(t, http.MethodPost, "/register", validRegisterBody())
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "An error occurred while registering the user", resp.Error)
	assert.Len(t, errorLines(), 1)
}

// A token generation failure produces a 500 and exactly one error log
// entry.
func TestLogin_TokenFailureLogsOnce(t *testing.T) {
	errorLines := captureErrorLines(t)

	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("tobenna", "tobenna@example.com", "Passw0rd!")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	userStore.Users["tobenna"] = user

	handler := NewUserHandler(
		userStore,
		&mocks.MockJWTService{Err: assert.AnError},
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	req := newJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "tobenna",
		"password": "Passw0rd!",
	})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "An error occurred while logging in", resp.Error)
	assert.Len(t, errorLines(), 1)
}

func TestLogin_Success(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("tobenna", "tobenna@example.com", "Passw0rd!")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "stored-hash"
	userStore.Users["tobenna"] = user

	handler, _ := newTestUserHandler(userStore)

	req := newJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "tobenna",
		"password": "Passw0rd!",
	})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.Equal(t, "1 hour", resp.Timespan)
	assert.Equal(t, shared.StatusSuccessful, resp.Status)
}

func TestLogin_MissingFields(t *testing.T) {
	handler, _ := newTestUserHandler(mocks.NewMockUserStore())

	req := newJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "tobenna",
	})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "Username and password are required", resp.Error)
}

// An unknown username and a wrong password must be indistinguishable to
// the caller.
func TestLogin_InvalidCredentialsAreUniform(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("tobenna", "tobenna@example.com", "Passw0rd!")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	userStore.Users["tobenna"] = user

	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := NewUserHandler(
		userStore,
		jwtService,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{ShouldSucceed: false},
	)

	responses := make([]shared.ErrorResponse, 0, 2)
	codes := make([]int, 0, 2)
	for _, body := range []map[string]string{
		{"username": "nobody", "password": "Passw0rd!"},
		{"username": "tobenna", "password": "WrongPass!"},
	} {
		req := newJSONRequest(t, http.MethodPost, "/login", body)
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		codes = append(codes, rec.Code)
		responses = append(responses, decodeErrorResponse(t, rec))
	}

	assert.Equal(t, codes[0], codes[1])
	assert.Equal(t, http.StatusUnauthorized, codes[0])
	assert.Equal(t, responses[0], responses[1])
	assert.Equal(t, "Invalid username or password", responses[0].Error)
	assert.Equal(t, shared.StatusAccessDenied, responses[0].Status)
}

func TestFindUser_InvalidParameter(t *testing.T) {
	handler, _ := newTestUserHandler(mocks.NewMockUserStore())

	for _, target := range []string{"/users", "/users?username=user1"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.FindUser(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Username parameter is required or invalid", resp.Error)
	}
}

func TestFindUser_NotFound(t *testing.T) {
	handler, _ := newTestUserHandler(mocks.NewMockUserStore())

	req := httptest.NewRequest(http.MethodGet, "/users?username=nobody", nil)
	rec := httptest.NewRecorder()
	handler.FindUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, "User does not exist", resp.Error)
	assert.Equal(t, shared.StatusNotFound, resp.Status)
}

func TestFindUser_Success(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("tobenna", "tobenna@example.com", "Passw0rd!")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	userStore.Users["tobenna"] = user

	handler, _ := newTestUserHandler(userStore)

	req := httptest.NewRequest(http.MethodGet, "/users?username=tobenna", nil)
	rec := httptest.NewRecorder()
	handler.FindUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// No password material in the serialized user
	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))

	var rawUser map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["user"], &rawUser))
	assert.Equal(t, "tobenna", rawUser["username"])
	assert.NotContains(t, rawUser, "password")
	assert.NotContains(t, rawUser, "hashedPassword")
}

func TestFindUser_StoreFailure(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	userStore.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, assert.AnError
	}

	handler, _ := newTestUserHandler(userStore)

	req := httptest.NewRequest(http.MethodGet, "/users?username=tobenna", nil)
	rec := httptest.NewRecorder()
	handler.FindUser(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorResponse(t, rec)

	// The raw error never reaches the client
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
