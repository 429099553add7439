package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/users"
	"go.uber.org/zap"
)

const opaqueTokenBytes = 32

// TokenPair is what login and refresh hand back to clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterResult carries the public views of the freshly created user
// and credential.
type RegisterResult struct {
	User       *users.User    `json:"user"`
	Credential CredentialView `json:"credential"`
}

// LoginResult carries the user view plus a fresh token pair.
type LoginResult struct {
	User   *users.User `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}

// Identity is a resolved access token: the user profile and credential
// behind it.
type Identity struct {
	User       *users.User
	Credential *Credential
}

// Service orchestrates the credential lifecycle: registration, login,
// logout, token rotation, password changes and token-to-identity
// resolution. All effects go through ports.
type Service struct {
	config Config

	credentials   CredentialRepository
	refreshTokens RefreshTokenRepository
	users         users.Repository
	passwords     PasswordHasher
	tokens        TokenService

	logger *zap.Logger
}

func NewService(
	config Config,
	credentials CredentialRepository,
	refreshTokens RefreshTokenRepository,
	userRepository users.Repository,
	passwords PasswordHasher,
	tokens TokenService,
	logger *zap.Logger,
) *Service {
	return &Service{
		config: config,

		credentials:   credentials,
		refreshTokens: refreshTokens,
		users:         userRepository,
		passwords:     passwords,
		tokens:        tokens,

		logger: logger,
	}
}

// Register creates a user profile and its credential. The user is
// written first so the credential can reference its ID; there is no
// compensation if the credential write fails afterwards, the error is
// surfaced and the orphan logged.
func (s *Service) Register(ctx context.Context, email, name, password string, role Role) (*RegisterResult, error) {
	if role == "" {
		role = RoleUser
	}

	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.credentials.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrCredentialNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	user, err := users.NewUser(email, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user, err = s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	credential, err := NewCredential(user.ID, email, hash, role)
	if err != nil {
		return nil, err
	}

	if err := s.credentials.Save(ctx, credential); err != nil {
		s.logger.Warn("credential write failed after user creation, user left without credential",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", credential.Role.String()))

	return &RegisterResult{
		User:       user,
		Credential: credential.View(),
	}, nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	credential, err := s.credentials.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !credential.IsActive {
		return nil, ErrAccountDisabled
	}

	if !s.passwords.Compare(password, credential.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, credential.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			// Credential without a user is a data-integrity fault.
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, credential.UserID)
		}
		return nil, err
	}

	if err := s.credentials.UpdateLastLogin(ctx, credential.UserID, time.Now()); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, credential)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		User:   user,
		Tokens: *tokens,
	}, nil
}

// issueTokens mints an access token plus a refresh JWT whose token_id
// claim points at a stored opaque value. The record and the JWT share
// one effective lifetime.
func (s *Service) issueTokens(ctx context.Context, credential *Credential) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(AccessPayload{
		UserID: credential.UserID,
		Email:  credential.Email,
		Role:   credential.Role,
	})
	if err != nil {
		return nil, err
	}

	opaque, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(RefreshPayload{
		UserID:  credential.UserID,
		TokenID: opaque,
	})
	if err != nil {
		return nil, err
	}

	record, err := NewRefreshToken(credential.UserID, opaque, time.Now().Add(s.config.RefreshTTL))
	if err != nil {
		return nil, err
	}

	if _, err := s.refreshTokens.Save(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// Refresh rotates a refresh token: every failure collapses to
// ErrInvalidRefreshToken, and all of the owner's outstanding tokens are
// deleted before a new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	payload, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	record, err := s.refreshTokens.GetByToken(ctx, payload.TokenID)
	if err != nil || !record.IsValid() {
		return nil, ErrInvalidRefreshToken
	}

	credential, err := s.credentials.GetByUserID(ctx, record.UserID)
	if err != nil || !credential.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.refreshTokens.DeleteByUserID(ctx, credential.UserID); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	tokens, err := s.issueTokens(ctx, credential)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	return tokens, nil
}

// Logout drops every refresh token the user holds. Calling it with no
// active tokens is not an error.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.String("user_id", userID.String()))

	return nil
}

// ChangePassword verifies the current password, stores the new hash and
// invalidates every session by dropping the user's refresh tokens.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	credential, err := s.credentials.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return err
	}

	if !s.passwords.Compare(currentPassword, credential.HashedPassword) {
		return ErrInvalidCredentials
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}

	credential.HashedPassword = hash
	if err := s.credentials.Save(ctx, credential); err != nil {
		return err
	}

	if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))

	return nil
}

// AdminChangePassword resets a user's password without the current one.
// Authorization happens at the boundary; this just applies the reset
// and revokes the user's sessions.
func (s *Service) AdminChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	credential, err := s.credentials.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return err
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}

	credential.HashedPassword = hash
	if err := s.credentials.Save(ctx, credential); err != nil {
		return err
	}

	if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("password reset by admin", zap.String("user_id", userID.String()))

	return nil
}

// Identity resolves an access token into the user and credential behind
// it. Every failure branch collapses to ErrInvalidToken so the boundary
// cannot distinguish expired from tampered from deleted.
func (s *Service) Identity(ctx context.Context, accessToken string) (*Identity, error) {
	payload, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	credential, err := s.credentials.GetByUserID(ctx, payload.UserID)
	if err != nil || !credential.IsActive {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, credential.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		User:       user,
		Credential: credential,
	}, nil
}

// Deactivate blocks a user's logins and revokes their sessions.
func (s *Service) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if err := s.credentials.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return err
	}

	return s.refreshTokens.DeleteByUserID(ctx, userID)
}

func generateOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token value: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
