package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/users"
)

// RegisterRequest represents the request payload for registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=USER ADMIN"`
}

// LoginRequest represents the request payload for login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request payload for token rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest represents the request payload for a password
// change. The current password may be absent only when an admin resets
// another user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"omitempty"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
}

// UserResponse represents the public user view.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokensResponse represents an issued token pair.
type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterResponse represents the registration result. The credential
// view never carries the password hash.
type RegisterResponse struct {
	User       UserResponse        `json:"user"`
	Credential auth.CredentialView `json:"credential"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	User   UserResponse   `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

func newUserResponse(user *users.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func newTokensResponse(tokens auth.TokenPair) TokensResponse {
	return TokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}
}
