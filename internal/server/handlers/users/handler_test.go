package users

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/users"
	"github.com/hexauth/hexauth/pkg/badgerfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type noopNotifier struct{}

func (noopNotifier) WelcomeUser(_ context.Context, _ *users.User) error { return nil }

type testEnv struct {
	app     *fiber.App
	authSvc *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := badger.Open(badgerfx.Config{InMemory: true}.Build().WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	config := auth.Config{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	tokens, err := auth.NewTokenService(config)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	userRepo := users.NewRepository(db)

	authSvc := auth.NewService(
		config,
		auth.NewCredentialRepository(db),
		auth.NewRefreshTokenRepository(db),
		userRepo,
		auth.NewBcryptHasher(config),
		tokens,
		logger,
	)
	usersSvc := users.NewService(userRepo, noopNotifier{}, logger)

	app := fiber.New()
	NewHandler(usersSvc, authSvc, validator.New(), logger).Register(app)

	return &testEnv{app: app, authSvc: authSvc}
}

// token registers a user with the given role and returns its access token.
func (e *testEnv) token(t *testing.T, email string, role auth.Role) string {
	t.Helper()

	ctx := context.Background()
	_, err := e.authSvc.Register(ctx, email, "Test User", "password123", role)
	require.NoError(t, err)

	login, err := e.authSvc.Login(ctx, email, "password123")
	require.NoError(t, err)

	return login.Tokens.AccessToken
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

func TestHandler_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.doJSON(t, "GET", "/users/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "user@example.com", auth.RoleUser)

	status, data := env.doJSON(t, "POST", "/users/", token, fiber.Map{
		"email": "new@example.com",
		"name":  "New User",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var created UserResponse
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "new@example.com", created.Email)

	status, _ = env.doJSON(t, "POST", "/users/", token, fiber.Map{
		"email": "new@example.com",
		"name":  "Duplicate",
	})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestHandler_List(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.token(t, "user@example.com", auth.RoleUser)
	adminToken := env.token(t, "admin@example.com", auth.RoleAdmin)

	t.Run("admin only", func(t *testing.T) {
		status, _ := env.doJSON(t, "GET", "/users/", userToken, nil)
		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("lists registered users", func(t *testing.T) {
		status, data := env.doJSON(t, "GET", "/users/", adminToken, nil)
		require.Equal(t, fiber.StatusOK, status)

		var all []UserResponse
		require.NoError(t, json.Unmarshal(data, &all))
		assert.Len(t, all, 2)
	})
}

func TestHandler_GetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.token(t, "user@example.com", auth.RoleUser)
	adminToken := env.token(t, "admin@example.com", auth.RoleAdmin)

	status, data := env.doJSON(t, "POST", "/users/", adminToken, fiber.Map{
		"email": "target@example.com",
		"name":  "Target",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var target UserResponse
	require.NoError(t, json.Unmarshal(data, &target))

	t.Run("get by ID", func(t *testing.T) {
		status, data := env.doJSON(t, "GET", "/users/"+target.ID.String(), userToken, nil)
		require.Equal(t, fiber.StatusOK, status)

		var found UserResponse
		require.NoError(t, json.Unmarshal(data, &found))
		assert.Equal(t, target.ID, found.ID)
	})

	t.Run("malformed ID", func(t *testing.T) {
		status, _ := env.doJSON(t, "GET", "/users/not-a-uuid", userToken, nil)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		status, _ := env.doJSON(t, "DELETE", "/users/"+target.ID.String(), userToken, nil)
		assert.Equal(t, fiber.StatusForbidden, status)

		status, _ = env.doJSON(t, "DELETE", "/users/"+target.ID.String(), adminToken, nil)
		assert.Equal(t, fiber.StatusNoContent, status)

		status, _ = env.doJSON(t, "GET", "/users/"+target.ID.String(), userToken, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
