package mocks

import (
	"errors"

	"github.com/tobenna/blog-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)

	// HashValue is returned when HashFn is not set
	HashValue string
	Err       error
}

// Ensure MockPasswordHasher implements auth.PasswordHasher
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashValue != "" {
		return m.HashValue, m.Err
	}
	return "hashed:" + password, m.Err
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed controls the default behavior
	ShouldSucceed bool
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
