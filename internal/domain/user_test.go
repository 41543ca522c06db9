package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidUsername(t *testing.T) {
	cases := []struct {
		username string
		want     bool
	}{
		{"tobenna", true},
		{"A", true},
		{"ABCdefGHIjklMNO", true}, // 15 letters, upper bound
		{"", false},
		{"ABCdefGHIjklMNOp", false}, // 16 letters
		{"user1", false},            // digits not allowed
		{"user name", false},
		{"user_name", false},
		{"héllo", false},
	}

	for _, c := range cases {
		if got := ValidUsername(c.username); got != c.want {
			t.Errorf("ValidUsername(%q) = %v, want %v", c.username, got, c.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"test@example.com", true},
		{"first.last@sub.example.co", true},
		{"user@[192.168.1.1]", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@localhost", false}, // no TLD
		{"user name@example.com", false},
	}

	for _, c := range cases {
		if got := ValidEmail(c.email); got != c.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid with symbol", "Passw0rd!", true},
		{"valid minimum length", "aB$aaaaa", true},
		{"valid maximum length", "aB$aaaaaaaaaaaaaaaaa", true},
		{"too short", "aB$aaaa", false},
		{"too long", "aB$aaaaaaaaaaaaaaaaaa", false},
		{"no uppercase", "passw0rd!", false},
		{"no lowercase", "PASSW0RD!", false},
		{"no symbol", "Passwword", false},
		{"symbol outside the set", "Passwword*", false},
		{"empty", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ValidPassword(c.password); got != c.want {
				t.Errorf("ValidPassword(%q) = %v, want %v", c.password, got, c.want)
			}
		})
	}
}

func TestNewUser(t *testing.T) {
	user, err := NewUser("tobenna", "test@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Username != "tobenna" {
		t.Errorf("Expected username tobenna, got %s", user.Username)
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", user.Email)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid username
	_, err = NewUser("user1", "test@example.com", "Passw0rd!")
	if err != ErrInvalidUsername {
		t.Errorf("Expected error %v, got %v", ErrInvalidUsername, err)
	}

	// Test invalid email
	_, err = NewUser("tobenna", "invalidemail", "Passw0rd!")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test invalid password
	_, err = NewUser("tobenna", "test@example.com", "weak")
	if err != ErrInvalidPassword {
		t.Errorf("Expected error %v, got %v", ErrInvalidPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Username:       "tobenna",
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
	}

	// Test valid user loaded from the database (hash only)
	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// Test invalid username
	invalidUser = validUser
	invalidUser.Username = "not a username"
	if err := invalidUser.Validate(); err != ErrInvalidUsername {
		t.Errorf("Expected error %v, got %v", ErrInvalidUsername, err)
	}

	// Test invalid email
	invalidUser = validUser
	invalidUser.Email = "invalidemail"
	if err := invalidUser.Validate(); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test missing both password and hash
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}

	// Test plaintext password present but weak
	invalidUser = validUser
	invalidUser.Password = "weak"
	if err := invalidUser.Validate(); err != ErrInvalidPassword {
		t.Errorf("Expected error %v, got %v", ErrInvalidPassword, err)
	}
}
