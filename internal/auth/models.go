package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	credentialPrefix = "cred:"

	credentialPrefixByUser  = credentialPrefix + "user:"
	credentialPrefixByEmail = credentialPrefix + "email:"

	refreshTokenPrefix = "rtoken:"

	refreshTokenPrefixByToken = refreshTokenPrefix + "token:"
	refreshTokenPrefixByUser  = refreshTokenPrefix + "user:"
)

// credentialModel is the stored document shape for a credential. The
// password hash is persisted here and nowhere else.
type credentialModel struct {
	UserID         uuid.UUID  `json:"user_id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"password_hash"`
	Role           Role       `json:"role"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at"`
}

func newCredentialModel(credential *Credential) *credentialModel {
	if credential == nil {
		return nil
	}

	return &credentialModel{
		UserID:         credential.UserID,
		Email:          credential.Email,
		HashedPassword: credential.HashedPassword,
		Role:           credential.Role,
		IsActive:       credential.IsActive,
		CreatedAt:      credential.CreatedAt,
		LastLoginAt:    credential.LastLoginAt,
	}
}

func (c *credentialModel) toDomain() *Credential {
	if c == nil {
		return nil
	}

	return &Credential{
		UserID:         c.UserID,
		Email:          c.Email,
		HashedPassword: c.HashedPassword,
		Role:           c.Role,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		LastLoginAt:    c.LastLoginAt,
	}
}

// StorageKey implements storage.Entity.
func (c *credentialModel) StorageKey() string {
	return credentialPrefixByUser + c.UserID.String()
}

// StorageIndexes implements storage.Entity.
func (c *credentialModel) StorageIndexes() []string {
	return []string{credentialPrefixByEmail + c.Email}
}

// MarshalStorage implements storage.Entity.
func (c *credentialModel) MarshalStorage() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credential: %w", err)
	}

	return data, nil
}

// UnmarshalStorage implements storage.Entity.
func (c *credentialModel) UnmarshalStorage(data []byte) error {
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return nil
}

// refreshTokenModel is the stored document shape for a refresh token,
// keyed by the opaque token value the service looks up.
type refreshTokenModel struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	IsRevoked bool      `json:"is_revoked"`
}

func newRefreshTokenModel(token *RefreshToken) *refreshTokenModel {
	if token == nil {
		return nil
	}

	return &refreshTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
		IsRevoked: token.IsRevoked,
	}
}

func (t *refreshTokenModel) toDomain() *RefreshToken {
	if t == nil {
		return nil
	}

	return &RefreshToken{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
		IsRevoked: t.IsRevoked,
	}
}

// StorageKey implements storage.Entity.
func (t *refreshTokenModel) StorageKey() string {
	return refreshTokenPrefixByToken + t.Token
}

// StorageIndexes implements storage.Entity.
func (t *refreshTokenModel) StorageIndexes() []string {
	return []string{refreshTokenPrefixByUser + t.UserID.String() + ":" + t.Token}
}

// MarshalStorage implements storage.Entity.
func (t *refreshTokenModel) MarshalStorage() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	return data, nil
}

// UnmarshalStorage implements storage.Entity.
func (t *refreshTokenModel) UnmarshalStorage(data []byte) error {
	if err := json.Unmarshal(data, t); err != nil {
		return fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}

	return nil
}
