package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/store"
)

// RequireSession guards admin endpoints with the bearer tokens minted at
// login.
func RequireSession(sessions *store.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if token == "" || !sessions.Validate(token) {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("unauthorized admin access attempt")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals("token", token)
		return c.Next()
	}
}
