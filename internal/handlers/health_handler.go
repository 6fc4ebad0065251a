package handlers

import "github.com/gofiber/fiber/v2"

// RegisterHealthRoutes registers the health-check endpoint.
func RegisterHealthRoutes(router fiber.Router) {
	router.Get("/health-check", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
}
