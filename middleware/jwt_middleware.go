package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

// Protected authenticates a request: bearer token present, not revoked,
// signature valid, account still exists and is active. The full user row and
// the raw token land in locals for handlers downstream.
func Protected(store utils.TokenStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization format",
			})
		}
		token := tokenParts[1]

		if store.IsRevoked(token) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been revoked",
			})
		}

		claims, err := utils.ParseJWTToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if strings.TrimSpace(strings.ToLower(user.Role)) == models.RoleInactive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your account is inactive",
			})
		}

		c.Locals("user", &user)
		c.Locals("userID", user.ID)
		c.Locals("token", token)

		return c.Next()
	}
}

// RequireAdmin guards admin-only routes; must run after Protected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}
