package controller

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

var userLogger = log.New(os.Stdout, "USER: ", log.Ldate|log.Ltime|log.Lshortfile)

type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required,oneof=admin user inactive"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// CreateUser provisions an account with a generated password, returned once
// in plain text so the admin can hand it over.
func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
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
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	var existing models.User
	if err := config.DB.Where("email = ?", strings.TrimSpace(req.Email)).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A user with this email already exists",
		})
	}

	generatedPassword, err := generatePassword()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate password",
		})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(generatedPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		userLogger.Printf("Failed to create user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	userLogger.Printf("User created: %s (id %d)", user.Name, user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":           "User created successfully!",
		"generatedPassword": generatedPassword,
	})
}

// GetAllUsers lists every account for the admin user-management screen.
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := config.DB.Select("id, name, email, phone_number, role").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}
	return c.JSON(users)
}

// GetArborists lists active users for the crew picker; any authenticated
// user may call it.
func GetArborists(c *fiber.Ctx) error {
	var users []models.User
	if err := config.DB.
		Select("id, name, email, phone_number").
		Where("role <> ?", models.RoleInactive).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch arborists",
		})
	}
	return c.JSON(users)
}

// ResetPassword issues a fresh generated password for the target account and
// revokes the caller's presented token.
func ResetPassword(store utils.TokenStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user ID",
			})
		}
		if models.IsProtectedUserID(uint(id)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Cannot reset password for this user",
			})
		}

		var user models.User
		if err := config.DB.First(&user, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		generatedPassword, err := generatePassword()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to generate password",
			})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(generatedPassword), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to hash password",
			})
		}

		if err := config.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
			userLogger.Printf("Failed to reset password for user %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to reset password",
			})
		}

		if token, ok := c.Locals("token").(string); ok && token != "" {
			_ = store.Revoke(token, utils.TokenTTLRemaining(token))
		}

		return c.JSON(fiber.Map{
			"message":           "Password reset successfully!",
			"generatedPassword": generatedPassword,
		})
	}
}

// DeactivateUser soft-deletes: accounts with assessment history must stay
// resolvable by the enrichment engine forever, so the row survives with
// role=inactive.
func DeactivateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if models.IsProtectedUserID(uint(id)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Cannot deactivate an admin user",
		})
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", id).Update("role", models.RoleInactive)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to deactivate user",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{"message": "User deactivated successfully."})
}

// ToggleUserActivation flips inactive accounts back to user and active ones
// to inactive.
func ToggleUserActivation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if models.IsProtectedUserID(uint(id)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Cannot toggle activation for these users",
		})
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch user",
		})
	}

	newRole := models.RoleInactive
	if user.Role == models.RoleInactive {
		newRole = models.RoleUser
	}
	if err := config.DB.Model(&user).Update("role", newRole).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle user activation",
		})
	}

	return c.JSON(fiber.Map{"message": "User role updated to \"" + newRole + "\"."})
}

func generatePassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
