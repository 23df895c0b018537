package controller

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

type JobSiteLocation struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

type HospitalSnapshot struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CreateAssessmentRequest struct {
	JobSiteLocation JobSiteLocation   `json:"jobSiteLocation"`
	NearestHospital *HospitalSnapshot `json:"nearestHospital"`

	// crew entries arrive as numbers or strings depending on client version;
	// stored verbatim and normalized at read time
	OnSiteArborists []interface{} `json:"onSiteArborists" validate:"required,min=1"`

	WeatherConditions []string `json:"weatherConditions"`
	MethodsOfWork     []string `json:"methodsOfWork"`
	LocationRisks     []string `json:"locationRisks"`
	TreeRisks         []string `json:"treeRisks"`

	CarKeyLocation  string `json:"carKeyLocation"`
	AdditionalRisks string `json:"additionalRisks"`
	SafetyApproval  bool   `json:"safetyApproval"`
	TeamLeader      uint   `json:"teamLeader"`
}

// Create persists a submitted risk assessment. A typed address wins; with
// only coordinates the address is reverse-geocoded, and an unresolvable
// address fails the whole request rather than storing a record without one.
func (ac *AssessmentController) Create(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateAssessmentRequest
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

	address := strings.TrimSpace(req.JobSiteLocation.Address)
	if address == "" {
		if req.JobSiteLocation.Lat == nil || req.JobSiteLocation.Lng == nil || ac.Geocoder == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Job site address could not be resolved.",
			})
		}
		resolved, err := ac.Geocoder.ReverseGeocode(c.Context(), *req.JobSiteLocation.Lat, *req.JobSiteLocation.Lng)
		if err != nil {
			ac.Logger.Printf("Reverse geocoding failed: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Job site address could not be resolved.",
			})
		}
		address = resolved
	}

	assessment := models.Assessment{
		JobSiteAddress:     address,
		JobSiteLat:         req.JobSiteLocation.Lat,
		JobSiteLng:         req.JobSiteLocation.Lng,
		OnSiteArborists:    mustJSON(req.OnSiteArborists),
		WeatherConditions:  mustJSON(req.WeatherConditions),
		MethodsOfWork:      mustJSON(req.MethodsOfWork),
		LocationRisks:      mustJSON(req.LocationRisks),
		TreeRisks:          mustJSON(req.TreeRisks),
		CarKeyLocation:     req.CarKeyLocation,
		AdditionalRisks:    req.AdditionalRisks,
		SafetyConfirmation: req.SafetyApproval,
		TeamLeader:         req.TeamLeader,
		CreatedBy:          user.ID,
	}
	if req.NearestHospital != nil {
		assessment.NearestHospitalName = &req.NearestHospital.Name
		assessment.NearestHospitalAddress = &req.NearestHospital.Address
		assessment.NearestHospitalPhone = &req.NearestHospital.Phone
	}

	if err := ac.DB.Create(&assessment).Error; err != nil {
		utils.LogError("assessment_create", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create risk assessment.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Risk assessment created successfully!",
	})
}

// mustJSON serializes request slices into jsonb columns; nil slices become
// empty arrays so the columns never hold SQL NULL.
func mustJSON(v interface{}) datatypes.JSON {
	buf, err := json.Marshal(v)
	if err != nil || string(buf) == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(buf)
}
