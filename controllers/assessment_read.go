package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

// GetToday lists the caller's assessments for the current local calendar
// day, fully enriched. Admins see every record; everyone else only the ones
// they created or crew on — records they may not view are filtered out, not
// errored on.
func (ac *AssessmentController) GetToday(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	end := start.Add(24 * time.Hour)

	var assessments []models.Assessment
	if err := ac.DB.
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&assessments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessments.",
		})
	}

	names, err := ac.userNames()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessments.",
		})
	}

	enriched := make([]*models.EnrichedAssessment, 0, len(assessments))
	for i := range assessments {
		if !assessments[i].CanBeViewedBy(user) {
			continue
		}
		e, err := ac.enrich(&assessments[i], names)
		if err != nil {
			utils.LogError("assessment_enrich", err, map[string]interface{}{
				"assessment_id": assessments[i].ID,
			})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch assessments.",
			})
		}
		enriched = append(enriched, e)
	}

	return c.JSON(enriched)
}

// GetHistory returns the admin calendar view: every assessment, grouped by
// local creation date, address and timestamp only — no enrichment.
func (ac *AssessmentController) GetHistory(c *fiber.Ctx) error {
	var assessments []models.Assessment
	if err := ac.DB.
		Select("id, job_site_address, created_at").
		Order("created_at DESC").
		Find(&assessments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment history.",
		})
	}

	return c.JSON(models.GroupAssessmentsByDate(assessments, time.Local))
}

// GetByID returns one enriched assessment, gated by the access predicate.
func (ac *AssessmentController) GetByID(c *fiber.Ctx) error {
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
			"error": "Failed to fetch assessment.",
		})
	}

	if !assessment.CanBeViewedBy(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}

	names, err := ac.userNames()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment.",
		})
	}
	enriched, err := ac.enrich(&assessment, names)
	if err != nil {
		utils.LogError("assessment_enrich", err, map[string]interface{}{
			"assessment_id": assessment.ID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment.",
		})
	}

	return c.JSON(enriched)
}
