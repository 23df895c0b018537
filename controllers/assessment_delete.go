package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
)

// Delete removes an assessment, allowed only for its creator on the local
// calendar day it was created. After that window the record is permanent
// history. Losing a race against a concurrent delete reads as not found.
func (ac *AssessmentController) Delete(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assessment ID",
		})
	}

	var assessment models.Assessment
	if err := ac.DB.First(&assessment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Assessment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete assessment.",
		})
	}

	if !assessment.DeletableBy(user.ID, time.Now(), time.Local) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Assessments can only be deleted by their creator on the day they were created.",
		})
	}

	result := ac.DB.Delete(&models.Assessment{}, assessment.ID)
	if result.Error != nil {
		ac.Logger.Printf("Failed to delete assessment %d: %v", assessment.ID, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete assessment.",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Assessment deleted successfully."})
}
