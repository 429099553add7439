package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents the privilege level of a credential.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// roleRank orders roles; higher rank satisfies lower requirements.
// Unknown roles rank at zero and never satisfy anything.
var roleRank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// IsValid checks if a role is recognized.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Credential is the login-identity record, distinct from the user
// profile. The hashed password never leaves this package through View.
type Credential struct {
	UserID         uuid.UUID
	Email          string
	HashedPassword string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	LastLoginAt    *time.Time
}

// NewCredential validates and builds a credential. Emails are stored
// lower-cased so lookups stay case-insensitive.
func NewCredential(userID uuid.UUID, email, hashedPassword string, role Role) (*Credential, error) {
	if userID == uuid.Nil || email == "" || hashedPassword == "" {
		return nil, fmt.Errorf("%w: user ID, email and hashed password are required", ErrValidation)
	}

	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, string(role))
	}

	return &Credential{
		UserID:         userID,
		Email:          strings.ToLower(email),
		HashedPassword: hashedPassword,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now(),
		LastLoginAt:    nil,
	}, nil
}

// UpdateLastLogin stamps the credential with the current time.
func (c *Credential) UpdateLastLogin() {
	now := time.Now()
	c.LastLoginAt = &now
}

// Deactivate blocks further logins. Idempotent.
func (c *Credential) Deactivate() {
	c.IsActive = false
}

// Activate re-enables logins. Idempotent.
func (c *Credential) Activate() {
	c.IsActive = true
}

// HasRole reports whether this credential satisfies the required role.
// An unrecognized required role is never satisfied.
func (c *Credential) HasRole(required Role) bool {
	requiredRank, ok := roleRank[required]
	if !ok {
		return false
	}

	return roleRank[c.Role] >= requiredRank
}

// CredentialView is the external-facing shape of a credential. It
// unconditionally excludes the password hash.
type CredentialView struct {
	UserID      uuid.UUID  `json:"user_id"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (c *Credential) View() CredentialView {
	return CredentialView{
		UserID:      c.UserID,
		Email:       c.Email,
		Role:        c.Role,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		LastLoginAt: c.LastLoginAt,
	}
}

// RefreshToken is the server-side record of an issued refresh token.
// Token holds the opaque lookup value, not the signed refresh JWT.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	IsRevoked bool
}

// NewRefreshToken validates and builds a refresh-token record. The ID
// stays zero until storage assigns one.
func NewRefreshToken(userID uuid.UUID, token string, expiresAt time.Time) (*RefreshToken, error) {
	if userID == uuid.Nil || token == "" || expiresAt.IsZero() {
		return nil, fmt.Errorf("%w: user ID, token and expiry are required", ErrValidation)
	}

	return &RefreshToken{
		ID:        uuid.Nil,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
		IsRevoked: false,
	}, nil
}

// IsExpired reports whether the token lifetime has passed. The expiry
// instant itself already counts as expired.
func (t *RefreshToken) IsExpired() bool {
	return !time.Now().Before(t.ExpiresAt)
}

// Revoke is a one-way transition. Idempotent.
func (t *RefreshToken) Revoke() {
	t.IsRevoked = true
}

// IsValid reports whether the token may still be redeemed.
func (t *RefreshToken) IsValid() bool {
	return !t.IsRevoked && !t.IsExpired()
}
