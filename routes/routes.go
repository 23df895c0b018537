package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "github.com/rudolfs-eglitis/wasa-risk-assessment/controllers"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/middleware"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

// SetupRoutes wires every endpoint. Collaborators (token store, geocoder,
// PDF renderer) come in from main so they can be swapped in tests.
func SetupRoutes(app *fiber.App, db *gorm.DB, store utils.TokenStore, geocoder utils.Geocoder, renderer utils.PDFRenderer) {
	requestLog := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	authController := controller.NewAuthController(db, store, log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile))
	assessmentController := controller.NewAssessmentController(db, log.New(os.Stdout, "ASSESSMENT: ", log.Ldate|log.Ltime|log.Lshortfile), geocoder, renderer)
	geocodeController := controller.NewGeocodeController(geocoder, log.New(os.Stdout, "GEOCODE: ", log.LstdFlags))

	// Auth: login/logout public, validation behind the middleware
	auth := app.Group("/auth", requestLog)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/validate", middleware.Protected(store), authController.Validate)

	// Users: admin-managed, except the crew picker list
	users := app.Group("/users", requestLog, middleware.Protected(store))
	users.Get("/arborists", controller.GetArborists)

	adminUsers := users.Group("", middleware.RequireAdmin())
	adminUsers.Post("/", controller.CreateUser)
	adminUsers.Get("/", controller.GetAllUsers)
	adminUsers.Post("/:id/reset-password", controller.ResetPassword(store))
	adminUsers.Put("/:id/toggle-activation", controller.ToggleUserActivation)
	adminUsers.Delete("/:id", controller.DeactivateUser)

	// Reference data: reads for any authenticated user, mutations admin-only
	conditions := app.Group("/conditions", requestLog, middleware.Protected(store))
	conditions.Get("/", controller.GetAllConditions)
	conditions.Get("/grouped", controller.GetGroupedConditions)
	conditions.Get("/with-mitigations", controller.GetConditionsWithMitigations)
	conditions.Get("/type/:type", controller.GetConditionsByType)

	adminConditions := conditions.Group("", middleware.RequireAdmin())
	adminConditions.Post("/", controller.AddCondition)
	adminConditions.Put("/:id", controller.EditCondition)
	adminConditions.Delete("/:id", controller.DeleteCondition)

	mitigations := app.Group("/mitigations", requestLog, middleware.Protected(store), middleware.RequireAdmin())
	mitigations.Post("/", controller.CreateMitigation)
	mitigations.Get("/", controller.GetAllMitigations)
	mitigations.Get("/:id", controller.GetMitigationByID)
	mitigations.Put("/:id", controller.UpdateMitigation)
	mitigations.Delete("/:id", controller.DeleteMitigation)

	// Assessments: fixed paths before the :id routes
	assessments := app.Group("/assessments", requestLog, middleware.Protected(store))
	assessments.Post("/", assessmentController.Create)
	assessments.Get("/today", assessmentController.GetToday)
	assessments.Get("/history", middleware.RequireAdmin(), assessmentController.GetHistory)
	assessments.Get("/:id/pdf", assessmentController.ExportPDF)
	assessments.Get("/:id", assessmentController.GetByID)
	assessments.Delete("/:id", assessmentController.Delete)

	geocode := app.Group("/api/geocode", requestLog, middleware.Protected(store))
	geocode.Get("/reverse", geocodeController.Reverse)
}
