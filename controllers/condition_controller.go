package controller

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

var conditionLogger = log.New(os.Stdout, "CONDITION: ", log.Ldate|log.Ltime|log.Lshortfile)

type ConditionRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=weather location tree"`
}

// GetAllConditions returns the flat list for the admin curation screen.
func GetAllConditions(c *fiber.Ctx) error {
	var conditions []models.Condition
	if err := config.DB.Find(&conditions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch conditions",
		})
	}
	return c.JSON(conditions)
}

// GetGroupedConditions returns conditions bucketed by type, the shape the
// assessment form consumes.
func GetGroupedConditions(c *fiber.Ctx) error {
	var conditions []models.Condition
	if err := config.DB.Find(&conditions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch conditions",
		})
	}

	grouped := make(map[string][]models.Condition)
	for _, cond := range conditions {
		grouped[cond.Type] = append(grouped[cond.Type], cond)
	}
	return c.JSON(grouped)
}

// GetConditionsByType returns the conditions of one category.
func GetConditionsByType(c *fiber.Ctx) error {
	conditionType := c.Params("type")
	if !models.ValidConditionType(conditionType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid condition type",
		})
	}

	var conditions []models.Condition
	if err := config.DB.Where("type = ?", conditionType).Find(&conditions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch conditions",
		})
	}
	return c.JSON(conditions)
}

// GetConditionsWithMitigations returns every condition with its linked
// mitigations attached, for the reference-data management screen.
func GetConditionsWithMitigations(c *fiber.Ctx) error {
	var conditions []models.Condition
	if err := config.DB.Order("type, name").Find(&conditions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch conditions",
		})
	}

	var links []models.ConditionMitigationRow
	if err := config.DB.
		Table("condition_mitigations cm").
		Select("cm.condition_id, m.id AS mitigation_id, m.name, m.type").
		Joins("LEFT JOIN mitigations m ON m.id = cm.mitigation_id").
		Scan(&links).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch mitigation links",
		})
	}

	return c.JSON(models.GroupConditionMitigations(conditions, links))
}

// AddCondition creates a condition; the (name, type) pair must be new.
func AddCondition(c *fiber.Ctx) error {
	var req ConditionRequest
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
			"error": "Condition name cannot be empty.",
		})
	}

	var existing models.Condition
	if err := config.DB.Where("name = ? AND type = ?", name, req.Type).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Condition with this name already exists.",
		})
	}

	cond := models.Condition{Name: name, Type: req.Type}
	if err := config.DB.Create(&cond).Error; err != nil {
		conditionLogger.Printf("Failed to add condition: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add condition",
		})
	}
	return c.JSON(fiber.Map{"message": "Condition added successfully."})
}

// EditCondition renames or retypes a condition in place. Historical
// assessments keep their old name snapshots and simply stop matching; that
// is the accepted trade-off of name-snapshot storage.
func EditCondition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid condition ID",
		})
	}

	var req ConditionRequest
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
			"error": "Condition name cannot be empty.",
		})
	}

	var existing models.Condition
	if err := config.DB.Where("name = ? AND type = ? AND id <> ?", name, req.Type, id).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Condition with this name already exists.",
		})
	}

	result := config.DB.Model(&models.Condition{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "type": req.Type})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update condition",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Condition not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Condition updated successfully."})
}

// DeleteCondition removes a condition unconditionally; links and historical
// name snapshots are not cascade-checked.
func DeleteCondition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid condition ID",
		})
	}

	if err := config.DB.Delete(&models.Condition{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete condition",
		})
	}
	return c.JSON(fiber.Map{"message": "Condition deleted successfully."})
}
