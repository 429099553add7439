package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService(Config{AccessSecret: []byte("a")})
	assert.Error(t, err)

	_, err = NewTokenService(Config{RefreshSecret: []byte("r")})
	assert.Error(t, err)

	_, err = NewTokenService(newTestConfig())
	assert.NoError(t, err)
}

func TestJWTTokenService_AccessRoundTrip(t *testing.T) {
	service, err := NewTokenService(newTestConfig())
	require.NoError(t, err)

	payload := AccessPayload{
		UserID: uuid.New(),
		Email:  "alice@example.com",
		Role:   RoleAdmin,
	}

	token, err := service.GenerateAccessToken(payload)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := service.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, payload.UserID, verified.UserID)
	assert.Equal(t, payload.Email, verified.Email)
	assert.Equal(t, payload.Role, verified.Role)
}

func TestJWTTokenService_RefreshRoundTrip(t *testing.T) {
	service, err := NewTokenService(newTestConfig())
	require.NoError(t, err)

	payload := RefreshPayload{
		UserID:  uuid.New(),
		TokenID: "opaque-token-id",
	}

	token, err := service.GenerateRefreshToken(payload)
	require.NoError(t, err)

	verified, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)

	assert.Equal(t, payload.UserID, verified.UserID)
	assert.Equal(t, payload.TokenID, verified.TokenID)
}

func TestJWTTokenService_RejectsCrossUse(t *testing.T) {
	service, err := NewTokenService(newTestConfig())
	require.NoError(t, err)

	accessToken, err := service.GenerateAccessToken(AccessPayload{UserID: uuid.New(), Email: "a@b.com", Role: RoleUser})
	require.NoError(t, err)
	refreshToken, err := service.GenerateRefreshToken(RefreshPayload{UserID: uuid.New(), TokenID: "opaque"})
	require.NoError(t, err)

	// the two token kinds are signed with different secrets
	_, err = service.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTTokenService_RejectsForeignSignature(t *testing.T) {
	service, err := NewTokenService(newTestConfig())
	require.NoError(t, err)

	other, err := NewTokenService(Config{
		AccessSecret:  []byte("other-access"),
		RefreshSecret: []byte("other-refresh"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	token, err := other.GenerateAccessToken(AccessPayload{UserID: uuid.New(), Email: "a@b.com", Role: RoleUser})
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTTokenService_RejectsExpired(t *testing.T) {
	config := newTestConfig()
	config.AccessTTL = -time.Minute
	config.RefreshTTL = -time.Minute

	service, err := NewTokenService(config)
	require.NoError(t, err)

	accessToken, err := service.GenerateAccessToken(AccessPayload{UserID: uuid.New(), Email: "a@b.com", Role: RoleUser})
	require.NoError(t, err)
	refreshToken, err := service.GenerateRefreshToken(RefreshPayload{UserID: uuid.New(), TokenID: "opaque"})
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestJWTTokenService_RejectsGarbage(t *testing.T) {
	service, err := NewTokenService(newTestConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err = service.VerifyAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = service.VerifyRefreshToken(token)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	}
}

func TestJWTTokenService_Decode(t *testing.T) {
	service, err := NewTokenService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := service.GenerateAccessToken(AccessPayload{UserID: userID, Email: "alice@example.com", Role: RoleUser})
	require.NoError(t, err)

	claims := service.Decode(token)
	require.NotNil(t, claims)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, userID.String(), claims["user_id"])

	assert.Nil(t, service.Decode("garbage"))
}
