package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthController owns login/logout. The token store is injected so logout
// revocation can be backed by memory or Redis interchangeably.
type AuthController struct {
	DB     *gorm.DB
	Store  utils.TokenStore
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, store utils.TokenStore, logger *log.Logger) *AuthController {
	return &AuthController{DB: db, Store: store, Logger: logger}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	// legacy rows carry the role with stray spacing/casing
	if strings.TrimSpace(strings.ToLower(user.Role)) == models.RoleInactive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Your account is inactive",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, err := utils.GenerateJWTToken(&user)
	if err != nil {
		ac.Logger.Printf("Failed to generate token for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{"token": token})
}

// Logout revokes the presented token for its remaining lifetime.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No token provided",
		})
	}

	ttl := utils.TokenTTLRemaining(token)
	if err := ac.Store.Revoke(token, ttl); err != nil {
		ac.Logger.Printf("Failed to revoke token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log out",
		})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Validate is mounted behind the auth middleware; reaching it means the
// token passed every check.
func (ac *AuthController) Validate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"valid": true})
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
