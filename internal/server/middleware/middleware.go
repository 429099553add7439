package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/users"
)

const (
	userContextKey       = "auth_user"
	credentialContextKey = "auth_credential"
)

// IdentityResolver turns a bearer token into an authenticated identity.
type IdentityResolver interface {
	Identity(ctx context.Context, accessToken string) (*auth.Identity, error)
}

// RequireAuth extracts the bearer token and resolves it. Requests with
// no usable "Bearer <token>" header are rejected before the resolver is
// ever invoked; a whitespace-only token is handed to the resolver and
// fails there.
func RequireAuth(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication token required")
		}

		identity, err := resolver.Identity(c.Context(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, identity.User)
		c.Locals(credentialContextKey, identity.Credential)

		return c.Next()
	}
}

// RequireRole gates a route on the credential attached by RequireAuth.
// It never verifies tokens itself. An unrecognized required role fails
// every credential.
func RequireRole(required auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		credential := CredentialFromContext(c)
		if credential == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		if !credential.HasRole(required) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}

		return c.Next()
	}
}

// UserFromContext returns the user attached by RequireAuth, or nil.
func UserFromContext(c *fiber.Ctx) *users.User {
	user, _ := c.Locals(userContextKey).(*users.User)
	return user
}

// CredentialFromContext returns the credential attached by RequireAuth,
// or nil.
func CredentialFromContext(c *fiber.Ctx) *auth.Credential {
	credential, _ := c.Locals(credentialContextKey).(*auth.Credential)
	return credential
}
