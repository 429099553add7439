package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialRepository persists credential documents.
type CredentialRepository interface {
	Save(ctx context.Context, credential *Credential) error
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Credential, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

// RefreshTokenRepository persists refresh-token documents, keyed by
// their opaque token value.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token *RefreshToken) (*RefreshToken, error)
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

// PasswordHasher turns plaintext passwords into opaque hashes and
// checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}

// AccessPayload is the identity carried by an access token.
type AccessPayload struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// RefreshPayload binds a refresh JWT to its server-side record.
type RefreshPayload struct {
	UserID  uuid.UUID
	TokenID string
}

// TokenService mints and validates signed tokens. Access and refresh
// tokens use distinct secrets; one kind must never verify as the other.
type TokenService interface {
	GenerateAccessToken(payload AccessPayload) (string, error)
	GenerateRefreshToken(payload RefreshPayload) (string, error)
	VerifyAccessToken(token string) (*AccessPayload, error)
	VerifyRefreshToken(token string) (*RefreshPayload, error)
	Decode(token string) map[string]any
}
