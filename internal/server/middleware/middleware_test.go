package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	identity *auth.Identity
	err      error

	calls  int
	tokens []string
}

func (r *stubResolver) Identity(_ context.Context, token string) (*auth.Identity, error) {
	r.calls++
	r.tokens = append(r.tokens, token)

	if r.err != nil {
		return nil, r.err
	}

	return r.identity, nil
}

func newIdentity(t *testing.T, role auth.Role) *auth.Identity {
	t.Helper()

	user, err := users.NewUser("alice@example.com", "Alice")
	require.NoError(t, err)
	user.ID = uuid.New()

	credential, err := auth.NewCredential(user.ID, user.Email, "hashed", role)
	require.NoError(t, err)

	return &auth.Identity{User: user, Credential: credential}
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects before resolving", func(t *testing.T) {
		cases := []struct {
			name   string
			header string
		}{
			{"no header", ""},
			{"wrong scheme", "Basic abc123"},
			{"bare keyword", "Bearer"},
			{"empty token", "Bearer "},
			{"lowercase scheme", "bearer token"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				resolver := &stubResolver{identity: newIdentity(t, auth.RoleUser)}

				app := fiber.New()
				app.Get("/", RequireAuth(resolver), func(c *fiber.Ctx) error {
					return c.SendStatus(fiber.StatusOK)
				})

				req := httptest.NewRequest("GET", "/", nil)
				if tc.header != "" {
					req.Header.Set(fiber.HeaderAuthorization, tc.header)
				}

				resp, err := app.Test(req)
				require.NoError(t, err)
				assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
				assert.Zero(t, resolver.calls)
			})
		}
	})

	t.Run("whitespace token reaches the resolver", func(t *testing.T) {
		resolver := &stubResolver{err: auth.ErrInvalidToken}

		app := fiber.New()
		app.Get("/", RequireAuth(resolver), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer   ")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, 1, resolver.calls)
		assert.Equal(t, []string{"  "}, resolver.tokens)
	})

	t.Run("resolver failure yields 401", func(t *testing.T) {
		resolver := &stubResolver{err: errors.New("boom")}

		app := fiber.New()
		app.Get("/", RequireAuth(resolver), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("attaches identity to the request", func(t *testing.T) {
		identity := newIdentity(t, auth.RoleUser)
		resolver := &stubResolver{identity: identity}

		app := fiber.New()
		app.Get("/", RequireAuth(resolver), func(c *fiber.Ctx) error {
			assert.Equal(t, identity.User, UserFromContext(c))
			assert.Equal(t, identity.Credential, CredentialFromContext(c))
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"some-token"}, resolver.tokens)
	})
}

func TestRequireRole(t *testing.T) {
	routeWithRole := func(identity *auth.Identity, required auth.Role) *fiber.App {
		app := fiber.New()
		app.Get("/",
			func(c *fiber.Ctx) error {
				if identity != nil {
					c.Locals(userContextKey, identity.User)
					c.Locals(credentialContextKey, identity.Credential)
				}
				return c.Next()
			},
			RequireRole(required),
			func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			},
		)
		return app
	}

	cases := []struct {
		name     string
		identity *auth.Identity
		required auth.Role
		want     int
	}{
		{"no identity", nil, auth.RoleUser, fiber.StatusUnauthorized},
		{"user lacks admin", newIdentity(t, auth.RoleUser), auth.RoleAdmin, fiber.StatusForbidden},
		{"user has user", newIdentity(t, auth.RoleUser), auth.RoleUser, fiber.StatusOK},
		{"admin has admin", newIdentity(t, auth.RoleAdmin), auth.RoleAdmin, fiber.StatusOK},
		{"admin covers user", newIdentity(t, auth.RoleAdmin), auth.RoleUser, fiber.StatusOK},
		{"unknown required role fails everyone", newIdentity(t, auth.RoleAdmin), auth.Role("WIZARD"), fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := routeWithRole(tc.identity, tc.required).Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
