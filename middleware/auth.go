package middleware

import (
	"smarty/config"
	"smarty/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests without a valid token and exposes the
// claims to handlers through locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals("account_id", claims.AccountID)
		c.Locals("account_email", claims.Email)
		c.Locals("account_role", claims.Role)
		return c.Next()
	}
}

// RoleMiddleware restricts a route to the given account role.
func RoleMiddleware(cfg *config.Config, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if claims.Role != role && claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden - " + role + " access required",
			})
		}

		c.Locals("account_id", claims.AccountID)
		c.Locals("account_email", claims.Email)
		c.Locals("account_role", claims.Role)
		return c.Next()
	}
}
