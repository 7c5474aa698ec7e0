package contactRoutes

import (
	contactController "learnhub/controllers/contact"
	"learnhub/middleware"
	contactValidator "learnhub/validators/contact"

	"github.com/gofiber/fiber/v2"
)

func SetupContactRoutes(app *fiber.App) {
	contactGroup := app.Group("/contact")

	// Public route
	contactGroup.Post("/", contactValidator.SubmitContact(), contactController.SubmitContact)

	// Admin routes
	adminGroup := app.Group("/admin/contact")
	adminGroup.Get("/", middleware.JWTMiddleware, contactController.AdminListContacts)
	adminGroup.Post("/:id/resolve", middleware.JWTMiddleware, contactController.AdminResolveContact)
}
