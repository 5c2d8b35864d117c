package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/pkg/utils"
)

// AdminAuth guards the admin surface with a static bearer token. An empty
// configured token disables the check (local development).
func AdminAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		provided := strings.TrimPrefix(header, "Bearer ")
		if provided == "" || provided != token {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		return c.Next()
	}
}
