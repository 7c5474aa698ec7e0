package applicationRoutes

import (
	applicationController "learnhub/controllers/application"
	"learnhub/middleware"
	applicationValidator "learnhub/validators/application"

	"github.com/gofiber/fiber/v2"
)

func SetupApplicationRoutes(app *fiber.App) {
	applicationGroup := app.Group("/applications")

	// User routes
	applicationGroup.Post("/:courseId", applicationValidator.CourseID(), applicationValidator.SubmitApplication(), middleware.JWTMiddleware, applicationController.SubmitApplication)
	applicationGroup.Get("/:courseId", applicationValidator.CourseID(), middleware.JWTMiddleware, applicationController.GetMyApplication)

	// Admin routes
	adminGroup := app.Group("/admin/applications")
	adminGroup.Get("/", middleware.JWTMiddleware, applicationController.AdminListApplications)
	adminGroup.Get("/:id", middleware.JWTMiddleware, applicationController.AdminGetApplication)
	adminGroup.Post("/:id/approve", middleware.JWTMiddleware, applicationController.AdminApproveApplication)
	adminGroup.Post("/:id/reject", middleware.JWTMiddleware, applicationController.AdminRejectApplication)
}
