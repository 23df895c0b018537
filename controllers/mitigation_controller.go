package controller

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

var mitigationLogger = log.New(os.Stdout, "MITIGATION: ", log.Ldate|log.Ltime|log.Lshortfile)

type CreateMitigationRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=weather location tree"`
	ConditionID *uint  `json:"conditionId"`
}

type UpdateMitigationRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=weather location tree"`
}

// CreateMitigation inserts a mitigation and, when a condition is named,
// links it in the same transaction. Either both rows land or neither does.
func CreateMitigation(c *fiber.Ctx) error {
	var req CreateMitigationRequest
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

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Mitigation name cannot be empty.",
		})
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	mitigation := models.Mitigation{Name: name, Type: req.Type}
	if err := tx.Create(&mitigation).Error; err != nil {
		tx.Rollback()
		mitigationLogger.Printf("Failed to create mitigation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create mitigation",
		})
	}

	if req.ConditionID != nil {
		var condition models.Condition
		if err := tx.First(&condition, *req.ConditionID).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Condition does not exist.",
			})
		}
		if condition.Type != req.Type {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Mitigation type must match condition type.",
			})
		}

		var count int64
		if err := tx.Model(&models.ConditionMitigation{}).
			Where("condition_id = ? AND mitigation_id = ?", condition.ID, mitigation.ID).
			Count(&count).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create mitigation link",
			})
		}
		if count == 0 {
			link := models.ConditionMitigation{ConditionID: condition.ID, MitigationID: mitigation.ID}
			if err := tx.Create(&link).Error; err != nil {
				tx.Rollback()
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to create mitigation link",
				})
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		mitigationLogger.Printf("Mitigation transaction commit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create mitigation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(mitigation)
}

// GetAllMitigations lists mitigations alphabetically for the curation UI.
func GetAllMitigations(c *fiber.Ctx) error {
	var mitigations []models.Mitigation
	if err := config.DB.Order("name").Find(&mitigations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch mitigations",
		})
	}
	return c.JSON(mitigations)
}

func GetMitigationByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mitigation ID",
		})
	}

	var mitigation models.Mitigation
	if err := config.DB.First(&mitigation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Mitigation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch mitigation",
		})
	}
	return c.JSON(mitigation)
}

// UpdateMitigation overwrites name and type; updated_at is bumped by gorm.
func UpdateMitigation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mitigation ID",
		})
	}

	var req UpdateMitigationRequest
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

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Mitigation name cannot be empty.",
		})
	}

	var mitigation models.Mitigation
	if err := config.DB.First(&mitigation, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mitigation not found",
		})
	}

	mitigation.Name = name
	mitigation.Type = req.Type
	if err := config.DB.Save(&mitigation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update mitigation",
		})
	}
	return c.JSON(mitigation)
}

// DeleteMitigation removes a mitigation unconditionally.
func DeleteMitigation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mitigation ID",
		})
	}

	if err := config.DB.Delete(&models.Mitigation{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete mitigation",
		})
	}
	return c.JSON(fiber.Map{"message": "Mitigation deleted successfully."})
}
