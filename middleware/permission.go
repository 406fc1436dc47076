package middleware

import (
	"github.com/ZuchiSpeed/jigitone/config"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly guards the content-authoring routes. Content is authored out of
// band by a small allow-list of identity-provider ids, not by a role stored
// in the database.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	if !config.IsAdmin(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}

	return c.Next()
}
