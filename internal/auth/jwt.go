package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "hexagonal-app"
	tokenAudience = "hexagonal-app-users"
)

// AccessClaims represents the claims stored in an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// RefreshClaims represents the claims stored in a refresh token. The
// token ID points at the server-side refresh-token record.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
}

func newRegisteredClaims(subject string, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(time.Now()),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        uuid.NewString(),
	}
}

// JWTTokenService implements TokenService with HS256-signed tokens and
// separate access/refresh secrets.
type JWTTokenService struct {
	config Config
}

// NewTokenService fails fast when either signing secret is missing.
func NewTokenService(config Config) (*JWTTokenService, error) {
	if len(config.AccessSecret) == 0 || len(config.RefreshSecret) == 0 {
		return nil, errors.New("both access and refresh token secrets must be configured")
	}

	return &JWTTokenService{
		config: config,
	}, nil
}

// GenerateAccessToken implements TokenService.
func (s *JWTTokenService) GenerateAccessToken(payload AccessPayload) (string, error) {
	claims := &AccessClaims{
		RegisteredClaims: newRegisteredClaims(payload.UserID.String(), time.Now().Add(s.config.AccessTTL)),
		UserID:           payload.UserID.String(),
		Email:            payload.Email,
		Role:             payload.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.config.AccessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// GenerateRefreshToken implements TokenService.
func (s *JWTTokenService) GenerateRefreshToken(payload RefreshPayload) (string, error) {
	claims := &RefreshClaims{
		RegisteredClaims: newRegisteredClaims(payload.UserID.String(), time.Now().Add(s.config.RefreshTTL)),
		UserID:           payload.UserID.String(),
		TokenID:          payload.TokenID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.config.RefreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signed, nil
}

// VerifyAccessToken implements TokenService. Any parse or claim failure
// collapses to ErrInvalidToken.
func (s *JWTTokenService) VerifyAccessToken(token string) (*AccessPayload, error) {
	claims := new(AccessClaims)
	if err := s.verify(token, claims, s.config.AccessSecret); err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &AccessPayload{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// VerifyRefreshToken implements TokenService. Any parse or claim failure
// collapses to ErrInvalidRefreshToken.
func (s *JWTTokenService) VerifyRefreshToken(token string) (*RefreshPayload, error) {
	claims := new(RefreshClaims)
	if err := s.verify(token, claims, s.config.RefreshSecret); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || claims.TokenID == "" {
		return nil, ErrInvalidRefreshToken
	}

	return &RefreshPayload{
		UserID:  userID,
		TokenID: claims.TokenID,
	}, nil
}

func (s *JWTTokenService) verify(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return err
	}

	if !parsed.Valid {
		return ErrInvalidToken
	}

	return nil
}

// Decode extracts claims without verifying the signature. Returns nil
// on malformed input.
func (s *JWTTokenService) Decode(token string) map[string]any {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	return claims
}

var _ TokenService = (*JWTTokenService)(nil)
