package users

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minNameLength = 2

// User is the profile record, distinct from the login credential.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser builds a user from raw input. The email is normalized to
// lower case; the ID is assigned by storage on save.
func NewUser(email, name string) (*User, error) {
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrValidation)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	if len(name) < minNameLength {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLength)
	}

	now := time.Now()

	return &User{
		ID:        uuid.Nil,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateProfile replaces the display name; too-short names are ignored.
func (u *User) UpdateProfile(name string) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return
	}

	u.Name = name
	u.UpdatedAt = time.Now()
}
