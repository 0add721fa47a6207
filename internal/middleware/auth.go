package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/myflix/myflix/internal/token"
)

const identityKey = "auth_identity"

// RequireAuth validates the bearer token on each request and stores the
// decoded identity for downstream handlers. Missing, malformed and expired
// tokens all surface as the same 401; the distinct rejection kind is only
// logged.
func RequireAuth(authority *token.Authority, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		raw := strings.TrimSpace(authz[len("Bearer "):])

		identity, err := authority.Authenticate(c.UserContext(), raw)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, token.ErrTokenExpired) {
				reason = "expired"
			}
			logger.Info("token rejected",
				slog.String("reason", reason),
				slog.String("path", c.Path()),
			)
			return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the authenticated identity stored by RequireAuth.
func IdentityFrom(c *fiber.Ctx) (token.Identity, bool) {
	identity, ok := c.Locals(identityKey).(token.Identity)
	return identity, ok
}
