package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for User, all wrapping ErrValidation.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrInvalidUsername     = fmt.Errorf("%w: username must be 1-15 letters", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrInvalidPassword     = fmt.Errorf("%w: password does not meet the policy", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z]{1,15}$`)
	emailRegex    = regexp.MustCompile(
		`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}))$`,
	)
)

// passwordSymbols is the fixed set of symbols the password policy accepts.
const passwordSymbols = "$#!@+=-?()%"

// ValidUsername reports whether username is 1-15 ASCII letters.
func ValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidEmail reports whether email has a standard email shape.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidPassword reports whether password satisfies the policy:
// 8-20 characters with at least one lowercase letter, one uppercase
// letter, and one symbol from the fixed set.
//
// The original policy is a lookahead regex; Go's regexp has no
// lookaheads, so the same language is checked with explicit scans.
func ValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 20 {
		return false
	}

	var hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasSymbol
}

// User represents a registered user of the blog API.
// The plaintext password is held only transiently during registration;
// neither it nor the hash is ever serialized in responses.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, used only during registration
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUser creates a new User with the given username, email and password.
// It generates a new UUID for the user ID and sets the creation timestamp.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if !ValidUsername(u.Username) {
		return ErrInvalidUsername
	}

	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if !ValidPassword(u.Password) {
			return ErrInvalidPassword
		}
	} else if u.HashedPassword == "" {
		// Users loaded from the database carry only the hash.
		return ErrEmptyHashedPassword
	}

	return nil
}
