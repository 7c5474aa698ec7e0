package courseRoutes

import (
	courseController "learnhub/controllers/course"
	"learnhub/middleware"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Public routes
	courseGroup.Get("/", courseController.GetCourses)
	courseGroup.Get("/:id", courseController.GetCourseDetails)

	// User routes
	enrollmentGroup := app.Group("/enrollments")
	enrollmentGroup.Get("/", middleware.JWTMiddleware, courseController.GetMyEnrollments)
	enrollmentGroup.Put("/:courseId/progress", courseValidator.UpdateProgress(), middleware.JWTMiddleware, courseController.UpdateProgress)

	// Admin routes
	adminGroup := app.Group("/admin/courses")
	adminGroup.Get("/", middleware.JWTMiddleware, courseController.AdminListCourses)
	adminGroup.Post("/", courseValidator.CreateCourse(), middleware.JWTMiddleware, courseController.AdminCreateCourse)
	adminGroup.Put("/:id", courseValidator.UpdateCourse(), middleware.JWTMiddleware, courseController.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, courseController.AdminDeleteCourse)
	adminGroup.Get("/:courseId/enrollments", middleware.JWTMiddleware, courseController.AdminListEnrollments)
}
