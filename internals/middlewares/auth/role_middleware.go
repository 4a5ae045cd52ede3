package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "fisiocatania_backend/internals/helpers/auth"
)

// RequireAdmin must run after AuthJWT.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := helperAuth.GetOperatorID(c); err != nil {
			return err
		}
		if !helperAuth.IsAdmin(c) {
			return fiber.NewError(fiber.StatusForbidden, "Riservato agli amministratori")
		}
		return c.Next()
	}
}
