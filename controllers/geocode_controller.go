package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

// GeocodeController proxies reverse geocoding for the map picker so the
// API key never reaches the browser.
type GeocodeController struct {
	Geocoder utils.Geocoder
	Logger   *log.Logger
}

func NewGeocodeController(geocoder utils.Geocoder, logger *log.Logger) *GeocodeController {
	return &GeocodeController{Geocoder: geocoder, Logger: logger}
}

func (gc *GeocodeController) Reverse(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Latitude and longitude are required.",
		})
	}

	if gc.Geocoder == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Geocoding is not available.",
		})
	}

	address, err := gc.Geocoder.ReverseGeocode(c.Context(), lat, lng)
	if err != nil {
		gc.Logger.Printf("Reverse geocoding failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch address.",
		})
	}

	return c.JSON(fiber.Map{"address": address})
}
