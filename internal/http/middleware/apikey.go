package middleware

import (
	"github.com/gofiber/fiber/v2"

	"relatosapi/internal/auth"
)

// APIKeyHeader carries the shared secret on protected routes.
const APIKeyHeader = "token"

// APIKey rejects requests whose token header does not match the gate's secret.
// Missing and wrong credentials get the same 403 so callers cannot tell them apart.
func APIKey(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if gate.Authorize(c.Get(APIKeyHeader)) != auth.Authorized {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}
