package main

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/config"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/middleware"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/routes"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Configuration error: %v", err)
	}
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Database error: %v", err)
	}

	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Warnf("Sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	store := utils.NewTokenStore(config.AppConfig.Redis)

	var geocoder utils.Geocoder
	if config.AppConfig.GoogleMapsAPIKey != "" {
		g, err := utils.NewGoogleGeocoder(config.AppConfig.GoogleMapsAPIKey, logger)
		if err != nil {
			logger.Warnf("Geocoding disabled: %v", err)
		} else {
			geocoder = g
		}
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, geocoding disabled")
	}

	renderer := utils.NewWkhtmltopdfRenderer(logger)

	app := fiber.New(fiber.Config{
		AppName: "WASA Risk Assessment API",
	})

	app.Use(middleware.CORS())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupRoutes(app, config.DB, store, geocoder, renderer)

	addr := ":" + config.AppConfig.ServerPort
	logger.Infof("Starting server on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
