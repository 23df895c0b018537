package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

// ExportPDF renders one assessment as a downloadable PDF. Access control
// runs before the renderer is ever invoked, and the record handed to the
// renderer is the same enriched shape the JSON views serve.
func (ac *AssessmentController) ExportPDF(c *fiber.Ctx) error {
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

	if ac.Renderer == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "PDF rendering is not available.",
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
			"error": "Failed to generate PDF.",
		})
	}

	pdf, err := ac.Renderer.RenderAssessment(enriched)
	if err != nil {
		utils.LogError("assessment_pdf_render", err, map[string]interface{}{
			"assessment_id": assessment.ID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate PDF.",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="risk-assessment-%d.pdf"`, assessment.ID))
	return c.Send(pdf)
}
